package promotion

import (
	"strings"
	"unicode/utf8"
)

type Stage int

const (
	// Other is any label that is not a known grade. It never changes.
	Other Stage = iota
	Elementary
	Middle
	High
	Graduated
)

// GraduatedLabel is the terminal grade label.
const GraduatedLabel = "졸업"

type stageInfo struct {
	prefix   rune
	maxLevel int
	next     Stage
}

var stages = map[Stage]stageInfo{
	Elementary: {prefix: '초', maxLevel: 6, next: Middle},
	Middle:     {prefix: '중', maxLevel: 3, next: High},
	High:       {prefix: '고', maxLevel: 3, next: Graduated},
}

// Grade is a parsed grade label, eg. "중2" is {Middle, 2}.
type Grade struct {
	Stage Stage
	Level int

	raw string // the original label, kept for Other
}

// ParseGrade parses a label made of a stage prefix and a single level digit ("초1".."초6",
// "중1".."중3", "고1".."고3") or the graduated label. Surrounding whitespace is ignored.
// Anything else parses as Other and keeps the label untouched.
func ParseGrade(label string) Grade {
	s := strings.TrimSpace(label)
	if s == GraduatedLabel {
		return Grade{Stage: Graduated, raw: label}
	}

	other := Grade{Stage: Other, raw: label}
	prefix, size := utf8.DecodeRuneInString(s)
	if prefix == utf8.RuneError || len(s) != size+1 {
		return other
	}
	digit := s[size]
	if digit < '0' || digit > '9' {
		return other
	}
	level := int(digit - '0')

	for stage, info := range stages {
		if info.prefix == prefix {
			if level < 1 || level > info.maxLevel {
				return other
			}
			return Grade{Stage: stage, Level: level, raw: label}
		}
	}
	return other
}

func (g Grade) String() string {
	switch g.Stage {
	case Graduated:
		return GraduatedLabel
	case Other:
		return g.raw
	}
	return string(stages[g.Stage].prefix) + string(rune('0'+g.Level))
}

// Next returns the grade one school year later. Graduated and Other grades do not change.
func (g Grade) Next() Grade {
	info, ok := stages[g.Stage]
	if !ok {
		return g
	}
	if g.Level < info.maxLevel {
		return Grade{Stage: g.Stage, Level: g.Level + 1}
	}
	if info.next == Graduated {
		return Grade{Stage: Graduated}
	}
	return Grade{Stage: info.next, Level: 1}
}

// PromoteOneStep returns the label of the next grade, or the label unchanged if it has none.
func PromoteOneStep(label string) string {
	g := ParseGrade(label)
	next := g.Next()
	if next == g {
		return label
	}
	return next.String()
}
