// ABOUTME: Tests for calendar helpers.
// ABOUTME: Covers formatting, ranges, weekday lookup, and month/year boundaries.
package dates

import (
	"slices"
	"testing"
	"time"
)

func TestFormatDateZeroPads(t *testing.T) {
	d := time.Date(2025, 3, 7, 22, 15, 0, 0, time.Local)
	if got := FormatDate(d); got != "2025-03-07" {
		t.Errorf("FormatDate = %s, want 2025-03-07", got)
	}
}

// withLocal runs the test with time.Local set to loc.
func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
}

func TestFormatDateUsesLocalCalendar(t *testing.T) {
	withLocal(t, time.FixedZone("PDT", -7*60*60))

	at, err := ParseTimestamp("2025-06-18T02:00:00Z")
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if got := FormatDate(at); got != "2025-06-17" {
		t.Errorf("FormatDate = %s, want 2025-06-17", got)
	}
	if got := FormatDate(StartOfDay(at)); got != "2025-06-17" {
		t.Errorf("StartOfDay date = %s, want 2025-06-17", got)
	}
	if !IsSameDay(at, time.Date(2025, 6, 17, 23, 0, 0, 0, time.Local)) {
		t.Error("IsSameDay should compare local calendar days")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("ParseDate returned %v", got)
	}
	if got.Hour() != 0 || got.Location() != time.Local {
		t.Errorf("expected local midnight, got %v", got)
	}

	if _, err := ParseDate("15-06-2025"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestDateRange(t *testing.T) {
	today := time.Date(2025, 3, 2, 9, 0, 0, 0, time.Local)

	got := DateRange(4, today)
	want := []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if !slices.Equal(got, want) {
		t.Errorf("DateRange(4) = %v, want %v", got, want)
	}

	if got := DateRange(0, today); len(got) != 0 {
		t.Errorf("DateRange(0) = %v, want empty", got)
	}
	if got := DateRange(1, today); !slices.Equal(got, []string{"2025-03-02"}) {
		t.Errorf("DateRange(1) = %v", got)
	}
}

func TestDateRangeCrossesYear(t *testing.T) {
	today := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	got := DateRange(2, today)
	if !slices.Equal(got, []string{"2024-12-31", "2025-01-01"}) {
		t.Errorf("DateRange across year = %v", got)
	}
}

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-06-15", 0}, // Sunday
		{"2025-06-16", 1},
		{"2025-06-21", 6},
		{"2024-02-29", 4}, // leap day, Thursday
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := DayOfWeek(tt.date)
			if err != nil {
				t.Fatalf("DayOfWeek failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DayOfWeek(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(0); got != "Sun" {
		t.Errorf("WeekdayName(0) = %s", got)
	}
	if got := WeekdayName(8); got != "Mon" {
		t.Errorf("WeekdayName(8) = %s", got)
	}
	if got := WeekdayName(-1); got != "Sat" {
		t.Errorf("WeekdayName(-1) = %s", got)
	}
}

func TestParseWeekday(t *testing.T) {
	for _, in := range []string{"wed", "Wed", "WEDNESDAY", " wednesday "} {
		got, err := ParseWeekday(in)
		if err != nil {
			t.Errorf("ParseWeekday(%q) error: %v", in, err)
			continue
		}
		if got != time.Wednesday {
			t.Errorf("ParseWeekday(%q) = %s", in, got)
		}
	}
	if _, err := ParseWeekday("funday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
}

func TestFormatForDisplay(t *testing.T) {
	if got := FormatForDisplay("2025-06-16"); got != "Mon, Jun 16" {
		t.Errorf("FormatForDisplay = %q, want %q", got, "Mon, Jun 16")
	}
	if got := FormatForDisplay("garbage"); got != "garbage" {
		t.Errorf("FormatForDisplay(garbage) = %q", got)
	}
}

func TestFormatTimeForDisplay(t *testing.T) {
	at := time.Date(2025, 6, 16, 14, 5, 0, 0, time.Local)
	if got := FormatTimeForDisplay(at); got != "02:05 PM" {
		t.Errorf("FormatTimeForDisplay = %q", got)
	}
	if got := FormatDateTimeForDisplay(at); got != "Jun 16, 2025 02:05 PM" {
		t.Errorf("FormatDateTimeForDisplay = %q", got)
	}
}

func TestCurrentWeekDates(t *testing.T) {
	wednesday := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	got := CurrentWeekDates(wednesday)
	want := []string{
		"2025-06-15", "2025-06-16", "2025-06-17", "2025-06-18",
		"2025-06-19", "2025-06-20", "2025-06-21",
	}
	if !slices.Equal(got, want) {
		t.Errorf("CurrentWeekDates = %v, want %v", got, want)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-03-01", -1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2025-02-28" {
		t.Errorf("AddDays = %s, want 2025-02-28", got)
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 6, 16, 0, 1, 0, 0, time.Local)
	b := time.Date(2025, 6, 16, 23, 59, 0, 0, time.Local)
	c := time.Date(2025, 6, 17, 0, 0, 0, 0, time.Local)
	if !IsSameDay(a, b) {
		t.Error("expected same day")
	}
	if IsSameDay(b, c) {
		t.Error("expected different days")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-16 07:45", time.Date(2025, 6, 16, 7, 45, 0, 0, time.Local)},
		{"2025-06-16T07:45", time.Date(2025, 6, 16, 7, 45, 0, 0, time.Local)},
		{"2025-06-16", time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)},
		{"2025-06-16T07:45:00Z", time.Date(2025, 6, 16, 7, 45, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unrecognized format")
	}
}
