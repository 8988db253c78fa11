// ABOUTME: Pure calendar helpers for record partitioning and display.
// ABOUTME: Dates are YYYY-MM-DD strings parsed as local midnight; "today" is always passed in.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the calendar date format used throughout the tracker.
const Layout = "2006-01-02"

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatDate returns the local calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DateRange returns n date strings ending at today, oldest first.
func DateRange(n int, today time.Time) []string {
	if n <= 0 {
		return []string{}
	}
	start := StartOfDay(today)
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, FormatDate(start.AddDate(0, 0, -i)))
	}
	return out
}

// DayOfWeek returns the weekday of a date string, 0 = Sunday.
func DayOfWeek(s string) (int, error) {
	t, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// WeekdayName returns the three-letter abbreviation for weekday index i (0 = Sunday).
func WeekdayName(i int) string {
	return weekdayNames[((i%7)+7)%7]
}

// ParseWeekday resolves a weekday abbreviation or full name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for i := time.Sunday; i <= time.Saturday; i++ {
		full := strings.ToLower(i.String())
		if s == full || s == full[:3] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", name)
}

// FormatForDisplay renders a date string as "Mon, Jan 2".
// Unparseable input is returned unchanged.
func FormatForDisplay(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Mon, Jan 2")
}

// FormatTimeForDisplay renders the clock time of t as "03:04 PM".
func FormatTimeForDisplay(t time.Time) string {
	return t.Format("03:04 PM")
}

// FormatDateTimeForDisplay renders t as "Jan 2, 2006 03:04 PM".
func FormatDateTimeForDisplay(t time.Time) string {
	return t.Format("Jan 2, 2006") + " " + FormatTimeForDisplay(t)
}

// CurrentWeekDates returns Sunday through Saturday of the week containing today.
func CurrentWeekDates(today time.Time) []string {
	start := StartOfDay(today)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, FormatDate(start.AddDate(0, 0, i)))
	}
	return out
}

// AddDays shifts a date string by n calendar days.
func AddDays(s string, n int) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// IsSameDay reports whether a and b fall on the same local calendar day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

var timestampLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	Layout,
}

// ParseTimestamp accepts RFC 3339 or a local "YYYY-MM-DD HH:MM",
// "YYYY-MM-DDTHH:MM" or "YYYY-MM-DD" time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, f := range timestampLayouts {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q (use YYYY-MM-DD HH:MM)", s)
}
