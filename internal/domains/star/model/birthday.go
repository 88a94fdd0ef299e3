package model

import "time"

const (
	// monthWeight turns (month, day) into a monotonic ordinal: month*31 + day.
	monthWeight = 31
	// yearOffset pushes birthdays that already passed this year behind upcoming ones.
	yearOffset = 365
)

// DayOrdinal maps a month/day pair onto month*31 + day.
func DayOrdinal(month time.Month, day int) int {
	return int(month)*monthWeight + day
}

// BirthdayOrderKey sorts birthdays by how soon they come after today.
// A birthday on today itself counts as already passed and sorts last.
func BirthdayOrderKey(birth, today time.Time) int {
	b := DayOrdinal(birth.Month(), birth.Day())
	t := DayOrdinal(today.Month(), today.Day())
	if b > t {
		return b - t
	}
	return b - t + yearOffset
}
