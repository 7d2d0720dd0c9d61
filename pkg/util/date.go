package util

import "time"

// FloorDay truncates t to midnight UTC.
func FloorDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FridayAnchor maps t to the Friday that closes its trading week: the midnight
// UTC of the Friday on or after t's date. Saturday and Sunday roll forward to
// the next week's Friday.
func FridayAnchor(t time.Time) time.Time {
	day := FloorDay(t)
	ahead := (int(time.Friday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, ahead)
}
