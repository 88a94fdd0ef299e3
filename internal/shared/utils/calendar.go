package utils

import "time"

// CalendarDay is one cell of a month grid. Number is 0 for padding cells.
type CalendarDay struct {
	Number  int  `json:"number"`
	InMonth bool `json:"in_month"`
}

// MonthCalendar returns the weeks of month as Monday-first rows of seven cells.
func MonthCalendar(year int, month time.Month) [][]CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := DaysIn(year, month)

	// Monday = 0 ... Sunday = 6
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][]CalendarDay
	week := make([]CalendarDay, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, CalendarDay{})
	}
	for d := 1; d <= days; d++ {
		week = append(week, CalendarDay{Number: d, InMonth: true})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]CalendarDay, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, CalendarDay{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// DaysIn returns the number of days in month for year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidMonthDay reports whether month/day exists in at least a leap year, so 2-29 is accepted.
func ValidMonthDay(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= DaysIn(2000, time.Month(month))
}
