package attendance

import (
	"strconv"
	"time"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/calendar"
)

// DailyStatus returns the worst status among the events of a single day.
func DailyStatus(events []Event) Severity {
	worst := NoData
	for _, ev := range events {
		if sev := SeverityOf(ev.Status); sev > worst {
			worst = sev
		}
	}
	return worst
}

// dayOf returns the day of month of an event date if it falls in the given month.
func dayOf(date string, year int, month time.Month) (int, bool) {
	t, err := time.Parse(core.DateLayout, date)
	if err != nil || t.Year() != year || t.Month() != month {
		return 0, false
	}
	return t.Day(), true
}

// MonthlySummary returns the daily status of every day of the month.
// Days without events, and events outside the month, are ignored (NoData).
func MonthlySummary(events []Event, year int, month time.Month) map[int]Severity {
	byDay := make(map[int][]Event)
	for _, ev := range events {
		if day, ok := dayOf(ev.Date, year, month); ok {
			byDay[day] = append(byDay[day], ev)
		}
	}

	days := calendar.DaysInMonth(year, month)
	summary := make(map[int]Severity, days)
	for day := 1; day <= days; day++ {
		summary[day] = DailyStatus(byDay[day])
	}
	return summary
}

// Tally counts the events of one day for a whole class.
type Tally struct {
	Present         int `json:"present"`
	Late            int `json:"late"`
	UnexcusedAbsent int `json:"unexcused_absent"`
	// MissingWork counts events with a missing homework or daily test.
	MissingWork int `json:"missing_work"`
}

func (t Tally) Total() int {
	return t.Present + t.Late + t.UnexcusedAbsent
}

// NeedsAttention reports whether someone was late or absent, or missed some work.
func (t Tally) NeedsAttention() bool {
	return t.Late > 0 || t.UnexcusedAbsent > 0 || t.MissingWork > 0
}

// DailyTallies counts the events of each day of the month. Days without events are omitted.
func DailyTallies(events []Event, year int, month time.Month) map[int]Tally {
	tallies := make(map[int]Tally)
	for _, ev := range events {
		day, ok := dayOf(ev.Date, year, month)
		if !ok {
			continue
		}
		t := tallies[day]
		switch SeverityOf(ev.Status) {
		case Present:
			t.Present++
		case Late:
			t.Late++
		case UnexcusedAbsent:
			t.UnexcusedAbsent++
		}
		if ev.Homework == MarkMissing || ev.DailyTest == MarkMissing {
			t.MissingWork++
		}
		tallies[day] = t
	}
	return tallies
}

// StatusCell renders a calendar cell as "<day>" or "<day>\n<status>".
func StatusCell(summary map[int]Severity) func(day int) string {
	return func(day int) string {
		label := strconv.Itoa(day)
		if sev := summary[day]; sev != NoData {
			label += "\n" + sev.String()
		}
		return label
	}
}
