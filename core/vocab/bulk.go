package vocab

import (
	"strconv"
	"strings"
)

// ParseBulk reads items pasted from a spreadsheet, one per line:
//
//	word<TAB>meaning[<TAB>pos<TAB>example_en<TAB>example_ko<TAB>tags<TAB>difficulty]
//	word / meaning
//
// Lines missing a word or a meaning are skipped.
func ParseBulk(text string) []NewItem {
	items := make([]NewItem, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var cols []string
		switch {
		case strings.Contains(line, "\t"):
			cols = strings.Split(line, "\t")
			for i := range cols {
				cols[i] = strings.TrimSpace(cols[i])
			}
		case strings.Contains(line, "/"):
			parts := strings.SplitN(line, "/", 2)
			cols = []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
		default:
			continue
		}

		col := func(i int) string {
			if i < len(cols) {
				return cols[i]
			}
			return ""
		}
		it := NewItem{
			Word:         col(0),
			Meaning:      col(1),
			PartOfSpeech: col(2),
			ExampleEn:    col(3),
			ExampleKo:    col(4),
			Tags:         col(5),
			Difficulty:   DefaultDifficulty,
		}
		if d, err := strconv.Atoi(col(6)); err == nil {
			it.Difficulty = validDifficulty(d)
		}
		if it.Word == "" || it.Meaning == "" {
			continue
		}
		items = append(items, it)
	}
	return items
}
