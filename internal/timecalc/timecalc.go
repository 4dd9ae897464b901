package timecalc

import (
	"fmt"
	"time"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// APIDateLayout is the date format the My Hours API expects in queries and bodies.
const APIDateLayout = "2006-01-02"

// DateString formats t as YYYY-MM-DD in its own location.
func DateString(t time.Time) string {
	return t.Format(APIDateLayout)
}

// ParseDate parses a YYYY-MM-DD value in the local zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(APIDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", model.ErrValidation, s)
	}
	return t, nil
}

// ParseDayMonth parses a dd-MM value as a date in the year of now.
func ParseDayMonth(s string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("02-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not dd-MM", model.ErrValidation, s)
	}
	return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location()), nil
}

// FormatDuration formats seconds rounded to the minute, like "1h 40m" or "45m".
func FormatDuration(seconds int64) string {
	minutes := (seconds + 30) / 60
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// WeekStart returns 00:00 of the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	return StartOfDay(t.AddDate(0, 0, -(wd - 1)))
}

// Week returns the seven calendar days starting at start.
func Week(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = StartOfDay(start).AddDate(0, 0, i)
	}
	return days
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// PreviousWorkday returns the last weekday before now: Friday for Sunday and
// Monday, the day before otherwise.
func PreviousWorkday(now time.Time) time.Time {
	switch now.Weekday() {
	case time.Sunday:
		return StartOfDay(now.AddDate(0, 0, -2))
	case time.Monday:
		return StartOfDay(now.AddDate(0, 0, -3))
	default:
		return StartOfDay(now.AddDate(0, 0, -1))
	}
}

// IsDayBefore reports whether day is the calendar day before now.
func IsDayBefore(day, now time.Time) bool {
	return SameDay(day, now.AddDate(0, 0, -1))
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
