package attendance

import "github.com/pkg/errors"

// Severity orders daily statuses: NoData < Present < Late < UnexcusedAbsent.
type Severity int

const (
	NoData Severity = iota
	Present
	Late
	UnexcusedAbsent
)

var (
	// statusSeverities is the single ranking table used to compare statuses.
	// Statuses missing from it rank as NoData.
	statusSeverities = map[Status]Severity{
		StatusPresent:         Present,
		StatusLate:            Late,
		StatusUnexcusedAbsent: UnexcusedAbsent,
	}

	severityCodes = map[Severity]string{
		NoData:          "",
		Present:         string(StatusPresent),
		Late:            string(StatusLate),
		UnexcusedAbsent: string(StatusUnexcusedAbsent),
	}
)

func SeverityOf(st Status) Severity {
	return statusSeverities[st]
}

// String returns the status code of the severity ("" for NoData).
func (s Severity) String() string {
	return severityCodes[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	code, ok := severityCodes[s]
	if !ok {
		return nil, errors.Errorf("invalid severity %d", int(s))
	}
	return []byte(code), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = NoData
		return nil
	}
	st, ok := ParseStatus(string(text))
	if !ok {
		return errors.Errorf("invalid severity %q", text)
	}
	*s = SeverityOf(st)
	return nil
}
