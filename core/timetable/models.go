package timetable

type (
	// Slot is a weekly recurring lesson. Weekday is 0=Monday..6=Sunday, times are zero-padded "HH:MM".
	Slot struct {
		ID          int64  `json:"id" db:"id"`
		ClassID     int64  `json:"class_id" db:"class_id"`
		ClassName   string `json:"class_name" db:"class_name"`
		Weekday     int    `json:"weekday" db:"weekday"`
		StartTime   string `json:"start_time" db:"start_time"`
		EndTime     string `json:"end_time" db:"end_time"`
		Subject     string `json:"subject" db:"subject"`
		Room        string `json:"room" db:"room"`
		TeacherName string `json:"teacher_name" db:"teacher_name"`
		Memo        string `json:"memo" db:"memo"`
	}

	NewSlot struct {
		ClassID     int64  `json:"class_id" validate:"required,gt=0"`
		Weekday     *int   `json:"weekday" validate:"required,min=0,max=6"`
		StartTime   string `json:"start_time" validate:"required,hhmm"`
		EndTime     string `json:"end_time" validate:"required,hhmm"`
		Subject     string `json:"subject" validate:"notblank,max=100"`
		Room        string `json:"room" validate:"max=50"`
		TeacherName string `json:"teacher_name" validate:"max=100"`
		Memo        string `json:"memo"`
	}
)

// Label renders the slot as shown in a timetable cell.
func (s Slot) Label() string {
	label := s.StartTime + "-" + s.EndTime + "\n" + s.ClassName + "\n" + s.Subject
	if s.TeacherName != "" {
		label += " / " + s.TeacherName
	}
	return label
}
