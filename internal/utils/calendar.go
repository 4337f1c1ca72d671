package utils

import (
	"time"

	"github.com/julianstephens/daypilot/internal/models"
)

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks is the number of empty cells before day 1 in a grid whose
// weeks start on the given day.
func LeadingBlanks(year int, month time.Month, start models.WeekStartDay) int {
	first := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	return (first - int(start) + 7) % 7
}

// MonthGrid lays out a month as weeks of seven cells. Each cell holds the day
// of the month, or 0 for padding before the first and after the last day.
func MonthGrid(year int, month time.Month, start models.WeekStartDay) [][]int {
	blanks := LeadingBlanks(year, month, start)
	days := DaysInMonth(year, month)

	cells := make([]int, blanks, blanks+days+6)
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// AddMonths moves to the first day of the month n months away.
func AddMonths(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
