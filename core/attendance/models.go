package attendance

import (
	"strings"

	"github.com/trezcool/hagwon/core"
)

type (
	Status  string
	Mark    string
	Channel string
)

const (
	StatusPresent         Status = "present"
	StatusLate            Status = "late"
	StatusUnexcusedAbsent Status = "unexcused_absent"

	MarkDone    Mark = "done"
	MarkPartial Mark = "partial"
	MarkMissing Mark = "missing"

	ChannelScanned Channel = "scanned"
	ChannelManual  Channel = "manual"
)

var (
	legacyStatuses = map[string]Status{
		"정상출석":  StatusPresent,
		"지각":    StatusLate,
		"미인정결석": StatusUnexcusedAbsent,
	}
	legacyMarks = map[string]Mark{
		"○": MarkDone,
		"△": MarkPartial,
		"X": MarkMissing,
	}
	legacyChannels = map[string]Channel{
		"QR": ChannelScanned,
		"수동": ChannelManual,
	}
)

// ParseStatus accepts both the canonical codes and the legacy labels.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	switch st := Status(s); st {
	case StatusPresent, StatusLate, StatusUnexcusedAbsent:
		return st, true
	}
	st, ok := legacyStatuses[s]
	return st, ok
}

func ParseMark(s string) (Mark, bool) {
	s = strings.TrimSpace(s)
	switch m := Mark(s); m {
	case MarkDone, MarkPartial, MarkMissing:
		return m, true
	}
	m, ok := legacyMarks[strings.ToUpper(s)]
	return m, ok
}

func ParseChannel(s string) (Channel, bool) {
	s = strings.TrimSpace(s)
	switch c := Channel(s); c {
	case ChannelScanned, ChannelManual:
		return c, true
	}
	c, ok := legacyChannels[strings.ToUpper(s)]
	return c, ok
}

// Event is one raw attendance row. A student may have several events on the same date.
type Event struct {
	ID          int64   `json:"id" db:"id"`
	StudentID   int64   `json:"student_id" db:"student_id"`
	ClassID     *int64  `json:"class_id,omitempty" db:"class_id"`
	Date        string  `json:"date" db:"date"` // YYYY-MM-DD
	Status      Status  `json:"status" db:"status"`
	Homework    Mark    `json:"homework,omitempty" db:"homework"`
	DailyTest   Mark    `json:"daily_test,omitempty" db:"daily_test"`
	CheckinTime string  `json:"checkin_time,omitempty" db:"checkin_time"` // HH:MM:SS
	Channel     Channel `json:"channel,omitempty" db:"channel"`
	RecordedBy  string  `json:"recorded_by,omitempty" db:"recorded_by"`
}

// NewEvent is the input of Service.Record. Empty Date and CheckinTime default to the current
// date and time.
type NewEvent struct {
	StudentID   int64   `json:"student_id" validate:"required,gt=0"`
	ClassID     *int64  `json:"class_id" validate:"omitempty,gt=0"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status      Status  `json:"status" validate:"required,oneof=present late unexcused_absent"`
	Homework    Mark    `json:"homework" validate:"omitempty,oneof=done partial missing"`
	DailyTest   Mark    `json:"daily_test" validate:"omitempty,oneof=done partial missing"`
	CheckinTime string  `json:"checkin_time" validate:"omitempty,datetime=15:04:05"`
	Channel     Channel `json:"channel" validate:"omitempty,oneof=scanned manual"`
	RecordedBy  string  `json:"recorded_by" validate:"max=100"`
}

// NewClassEvent is the input of Service.RecordClass.
type NewClassEvent struct {
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status     Status `json:"status" validate:"required,oneof=present late unexcused_absent"`
	Homework   Mark   `json:"homework" validate:"omitempty,oneof=done partial missing"`
	DailyTest  Mark   `json:"daily_test" validate:"omitempty,oneof=done partial missing"`
	RecordedBy string `json:"recorded_by" validate:"max=100"`
}

// Scope selects the events of exactly one student or of exactly one class.
type Scope struct {
	StudentID int64
	ClassID   int64
}

func StudentScope(id int64) Scope { return Scope{StudentID: id} }
func ClassScope(id int64) Scope   { return Scope{ClassID: id} }

func (s Scope) IsStudent() bool { return s.StudentID > 0 }

func (s Scope) validate() error {
	if (s.StudentID > 0) == (s.ClassID > 0) {
		return core.NewArgumentError("scope must name exactly one of student or class")
	}
	return nil
}
