// ABOUTME: Habit completion rate and streak calculations.
// ABOUTME: Both take explicit dates so results do not depend on the wall clock.
package stats

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
)

// scheduledOn reports whether the habit is due on the given date string.
// Unparseable dates are never scheduled.
func scheduledOn(h models.Habit, date string) bool {
	dow, err := dates.DayOfWeek(date)
	if err != nil {
		return false
	}
	return h.IsScheduledOn(time.Weekday(dow))
}

// CompletionRate returns the share of scheduled candidate dates that were
// completed, in [0, 1]. It is 0 when no candidate date is scheduled.
func CompletionRate(h models.Habit, candidates []string) float64 {
	scheduled, completed := 0, 0
	for _, d := range candidates {
		if !scheduledOn(h, d) {
			continue
		}
		scheduled++
		if h.IsCompletedOn(d) {
			completed++
		}
	}
	if scheduled == 0 {
		return 0
	}
	return float64(completed) / float64(scheduled)
}

// FormatRate renders a completion rate as a rounded percentage, e.g. "67%".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}

// Streak counts consecutive schedule-eligible completed days.
//
// The walk starts at today when today is completed, otherwise at yesterday,
// and steps back one calendar day at a time. A scheduled and completed day
// adds one; a scheduled day without completion ends the streak; days the
// habit is not scheduled on are skipped. The walk also ends once it passes
// the earliest completed date, since nothing earlier can extend it.
//
// Every day follows the schedule rule, today included: a completion logged
// on a day the habit is not scheduled adds nothing.
func Streak(h models.Habit, today time.Time) int {
	if len(h.CompletedDates) == 0 {
		return 0
	}
	earliest := slices.Min(h.CompletedDates)

	day := dates.StartOfDay(today)
	if !h.IsCompletedOn(dates.FormatDate(day)) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		d := dates.FormatDate(day)
		if d < earliest {
			return streak
		}
		if h.IsScheduledOn(day.Weekday()) {
			if !h.IsCompletedOn(d) {
				return streak
			}
			streak++
		}
		day = day.AddDate(0, 0, -1)
	}
}

// HabitReport is the derived view of one habit over a date window.
type HabitReport struct {
	Habit          models.Habit
	CompletionRate float64
	Streak         int
	DoneToday      bool
	DueToday       bool
}

// ReportHabits builds a report per habit for the window ending today.
func ReportHabits(habits []models.Habit, window []string, today time.Time) []HabitReport {
	todayStr := dates.FormatDate(today)
	out := make([]HabitReport, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitReport{
			Habit:          h,
			CompletionRate: CompletionRate(h, window),
			Streak:         Streak(h, today),
			DoneToday:      h.IsCompletedOn(todayStr),
			DueToday:       h.IsScheduledOn(today.Weekday()),
		})
	}
	return out
}
