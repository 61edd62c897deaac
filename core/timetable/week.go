package timetable

import "sort"

const DaysPerWeek = 7

// Week buckets slots by weekday (0=Monday..6=Sunday), each bucket ordered by start time.
type Week [DaysPerWeek][]Slot

// BuildWeek buckets slots by weekday. Slots with a weekday outside 0..6 are dropped.
// Overlapping slots are kept as is.
func BuildWeek(slots []Slot) Week {
	var week Week
	for _, s := range slots {
		if s.Weekday < 0 || s.Weekday >= DaysPerWeek {
			continue
		}
		week[s.Weekday] = append(week[s.Weekday], s)
	}
	for wd := range week {
		bucket := week[wd]
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].StartTime < bucket[j].StartTime })
	}
	return week
}

// IsEmpty reports whether the week has no slot at all.
func (w Week) IsEmpty() bool {
	for _, day := range w {
		if len(day) > 0 {
			return false
		}
	}
	return true
}

// Rows lays the week out as a table: one column per weekday, as many rows as the busiest day.
func (w Week) Rows() [][DaysPerWeek]string {
	var depth int
	for _, day := range w {
		if len(day) > depth {
			depth = len(day)
		}
	}
	rows := make([][DaysPerWeek]string, depth)
	for wd, day := range w {
		for i, s := range day {
			rows[i][wd] = s.Label()
		}
	}
	return rows
}
