package core

import "time"

// DateLayout is how calendar dates are stored and exchanged (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// MonthRange returns the range covering every day of the given month.
func MonthRange(year int, month time.Month) DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: first, To: first.AddDate(0, 1, -1)}
}

func (r DateRange) FromString() string { return r.From.Format(DateLayout) }
func (r DateRange) ToString() string   { return r.To.Format(DateLayout) }

// Contains reports whether date (YYYY-MM-DD) is within the range.
func (r DateRange) Contains(date string) bool {
	return date >= r.FromString() && date <= r.ToString()
}
