// Package calendar lays a month out as a fixed 6x7 grid (rows are weeks, columns Monday..Sunday).
package calendar

import "time"

const (
	Rows = 6
	Cols = 7
)

// Grid is a month laid out row-major. Cells outside the month are "".
type Grid [Rows][Cols]string

// DaysInMonth returns the number of days in the month, leap years included.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOf returns the weekday index of the date, Monday=0..Sunday=6.
func WeekdayOf(year int, month time.Month, day int) int {
	wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

// BuildGrid places day 1 at (0, WeekdayOf(year, month, 1)) and fills the following days row-major.
// cellFor renders each day; a nil cellFor leaves every cell empty.
func BuildGrid(year int, month time.Month, cellFor func(day int) string) Grid {
	var grid Grid
	if cellFor == nil {
		return grid
	}
	offset := WeekdayOf(year, month, 1)
	for day := 1; day <= DaysInMonth(year, month); day++ {
		pos := offset + day - 1
		grid[pos/Cols][pos%Cols] = cellFor(day)
	}
	return grid
}

// Days returns the dates of each cell (0 for cells outside the month).
func Days(year int, month time.Month) [Rows][Cols]int {
	var days [Rows][Cols]int
	offset := WeekdayOf(year, month, 1)
	for day := 1; day <= DaysInMonth(year, month); day++ {
		pos := offset + day - 1
		days[pos/Cols][pos%Cols] = day
	}
	return days
}
