package calendar

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		want  int
	}{
		{2024, time.March, 4, 0}, // Monday
		{2024, time.March, 1, 4}, // Friday
		{2024, time.March, 3, 6}, // Sunday
		{2024, time.January, 1, 0},
		{2023, time.October, 1, 6},
	}
	for _, tt := range tests {
		if got := WeekdayOf(tt.year, tt.month, tt.day); got != tt.want {
			t.Errorf("WeekdayOf(%d, %v, %d) = %d, want %d", tt.year, tt.month, tt.day, got, tt.want)
		}
	}
}

func TestBuildGrid(t *testing.T) {
	cell := func(day int) string { return strconv.Itoa(day) }

	t.Run("march 2024 starts on friday", func(t *testing.T) {
		grid := BuildGrid(2024, time.March, cell)
		assert.Equal(t, [Cols]string{"", "", "", "", "1", "2", "3"}, grid[0])
		assert.Equal(t, "31", grid[4][6])
		assert.Equal(t, [Cols]string{}, grid[5])
	})

	t.Run("month starting on monday", func(t *testing.T) {
		grid := BuildGrid(2024, time.January, cell)
		assert.Equal(t, "1", grid[0][0])
		assert.Equal(t, "31", grid[4][2])
		assert.Equal(t, "", grid[4][3])
	})

	t.Run("month needing six rows", func(t *testing.T) {
		// Sep 2024 starts on a sunday
		grid := BuildGrid(2024, time.September, cell)
		assert.Equal(t, "1", grid[0][6])
		assert.Equal(t, "30", grid[5][0])
	})

	t.Run("every day placed once, in order", func(t *testing.T) {
		for month := time.January; month <= time.December; month++ {
			grid := BuildGrid(2023, month, cell)
			var got []string
			for _, row := range grid {
				for _, c := range row {
					if c != "" {
						got = append(got, c)
					}
				}
			}
			want := make([]string, 0, DaysInMonth(2023, month))
			for d := 1; d <= DaysInMonth(2023, month); d++ {
				want = append(want, strconv.Itoa(d))
			}
			assert.Equal(t, want, got, month.String())
		}
	})

	t.Run("nil renderer", func(t *testing.T) {
		assert.Equal(t, Grid{}, BuildGrid(2024, time.March, nil))
	})
}

func TestDays(t *testing.T) {
	days := Days(2024, time.February)
	assert.Equal(t, 1, days[0][3])
	assert.Equal(t, 29, days[4][3])
	assert.Equal(t, 0, days[4][4])
}
