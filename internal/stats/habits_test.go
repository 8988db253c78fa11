// ABOUTME: Tests for habit completion rate and streak.
// ABOUTME: Uses fixed dates so results never depend on the wall clock.
package stats

import (
	"testing"
	"time"

	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
)

func habitWith(frequency []string, completed ...string) models.Habit {
	h := models.NewHabit("test", frequency, base)
	h.CompletedDates = append([]string{}, completed...)
	return h
}

func TestCompletionRateMonWedFri(t *testing.T) {
	// 2025-06-15 is a Sunday; the week runs to Saturday 2025-06-21.
	week := []string{
		"2025-06-15", "2025-06-16", "2025-06-17", "2025-06-18",
		"2025-06-19", "2025-06-20", "2025-06-21",
	}
	h := habitWith([]string{"Mon", "Wed", "Fri"}, "2025-06-16", "2025-06-20", "2025-06-17")

	rate := CompletionRate(h, week)
	if got := FormatRate(rate); got != "67%" {
		t.Errorf("FormatRate(CompletionRate) = %s, want 67%%", got)
	}
}

func TestCompletionRateNothingScheduled(t *testing.T) {
	h := habitWith([]string{"Sat"}, "2025-06-16")
	if got := CompletionRate(h, []string{"2025-06-16", "2025-06-17"}); got != 0 {
		t.Errorf("CompletionRate = %v, want 0", got)
	}
	if got := FormatRate(0); got != "0%" {
		t.Errorf("FormatRate(0) = %s", got)
	}
}

func TestStreakEveryDay(t *testing.T) {
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	yesterday := dates.FormatDate(today.AddDate(0, 0, -1))
	dayBefore := dates.FormatDate(today.AddDate(0, 0, -2))

	h := habitWith(models.Weekdays, yesterday, dayBefore)
	if got := Streak(h, today); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

func TestStreakIncludesToday(t *testing.T) {
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	h := habitWith(models.Weekdays, "2025-06-18", "2025-06-17", "2025-06-15")
	if got := Streak(h, today); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

func TestStreakTodayIncompleteDoesNotBreak(t *testing.T) {
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	h := habitWith(models.Weekdays, "2025-06-17", "2025-06-16", "2025-06-15")
	if got := Streak(h, today); got != 3 {
		t.Errorf("Streak = %d, want 3", got)
	}
}

func TestStreakSkipsUnscheduledDays(t *testing.T) {
	// Wednesday 2025-06-18; scheduled Mon/Wed/Fri.
	today := time.Date(2025, 6, 18, 20, 0, 0, 0, time.Local)
	h := habitWith([]string{"Mon", "Wed", "Fri"},
		"2025-06-18", // Wed
		"2025-06-16", // Mon
		"2025-06-13", // Fri
		"2025-06-09", // Mon, but Wed 06-11 is missing
	)
	if got := Streak(h, today); got != 3 {
		t.Errorf("Streak = %d, want 3", got)
	}
}

func TestStreakIgnoresUnscheduledToday(t *testing.T) {
	// Wednesday 2025-06-18 is not a scheduled day.
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	h := habitWith([]string{"Mon", "Tue"}, "2025-06-18", "2025-06-17", "2025-06-16")
	if got := Streak(h, today); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

func TestStreakBrokenYesterday(t *testing.T) {
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	h := habitWith(models.Weekdays, "2025-06-16", "2025-06-15")
	if got := Streak(h, today); got != 0 {
		t.Errorf("Streak = %d, want 0", got)
	}
}

func TestStreakNoSchedule(t *testing.T) {
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	h := habitWith(models.Weekdays, "2025-06-17")
	h.Frequency = []string{}
	if got := Streak(h, today); got != 0 {
		t.Errorf("Streak = %d, want 0", got)
	}
	if got := Streak(habitWith(models.Weekdays), today); got != 0 {
		t.Errorf("Streak with no completions = %d, want 0", got)
	}
}

func TestReportHabits(t *testing.T) {
	today := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local) // Wednesday
	h := habitWith([]string{"Wed"}, "2025-06-18", "2025-06-11")

	reports := ReportHabits([]models.Habit{h}, dates.DateRange(14, today), today)
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if !r.DoneToday || !r.DueToday {
		t.Errorf("DoneToday=%v DueToday=%v, want both true", r.DoneToday, r.DueToday)
	}
	if r.Streak != 2 {
		t.Errorf("Streak = %d, want 2", r.Streak)
	}
	if r.CompletionRate != 1 {
		t.Errorf("CompletionRate = %v, want 1", r.CompletionRate)
	}
}
