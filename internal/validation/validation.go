// ABOUTME: Per-category input validators for raw user input.
// ABOUTME: Each returns nil when valid or an *Error carrying a human-readable reason.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
)

// Limits for accepted readings.
const (
	MaxWaterML       = 10000
	MaxSteps         = 100000
	MaxWeightKg      = 500
	MaxSystolic      = 300
	MaxDiastolic     = 200
	MaxHeartRate     = 250
	MaxHabitNameRune = 50
)

// ErrInvalid is matched by every validation error via errors.Is.
var ErrInvalid = errors.New("invalid input")

// Error is a rejected input with the reason shown to the user.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

func fail(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

// parseNumber parses a finite decimal number.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseInteger parses a whole number.
func parseInteger(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// ValidateWaterIntake checks a water amount in millilitres.
func ValidateWaterIntake(amount string) error {
	v, ok := parseNumber(amount)
	if !ok {
		return fail("amount", "Please enter a valid number")
	}
	if v <= 0 {
		return fail("amount", "Water intake must be greater than 0")
	}
	if v > MaxWaterML {
		return fail("amount", "Water intake cannot exceed 10 liters (10,000 ml)")
	}
	return nil
}

// ValidateStepCount checks a step count.
func ValidateStepCount(steps string) error {
	v, ok := parseInteger(steps)
	if !ok {
		return fail("count", "Please enter a valid number")
	}
	if v < 0 {
		return fail("count", "Step count cannot be negative")
	}
	if v > MaxSteps {
		return fail("count", "Step count seems too high")
	}
	return nil
}

// ValidateWeight checks a weight in kilograms.
func ValidateWeight(weight string) error {
	v, ok := parseNumber(weight)
	if !ok {
		return fail("value", "Please enter a valid number")
	}
	if v <= 0 {
		return fail("value", "Weight must be greater than 0")
	}
	if v > MaxWeightKg {
		return fail("value", "Weight seems too high")
	}
	return nil
}

// ValidateBloodPressure checks a systolic/diastolic pair.
func ValidateBloodPressure(systolic, diastolic string) error {
	s, okS := parseNumber(systolic)
	d, okD := parseNumber(diastolic)
	if !okS || !okD {
		return fail("blood_pressure", "Please enter valid numbers")
	}
	if s <= 0 || d <= 0 {
		return fail("blood_pressure", "Blood pressure values must be greater than 0")
	}
	if s < d {
		return fail("blood_pressure", "Systolic should be higher than diastolic")
	}
	if s > MaxSystolic {
		return fail("systolic", "Systolic value seems too high")
	}
	if d > MaxDiastolic {
		return fail("diastolic", "Diastolic value seems too high")
	}
	return nil
}

// ValidateHeartRate checks a heart rate in beats per minute.
func ValidateHeartRate(bpm string) error {
	v, ok := parseInteger(bpm)
	if !ok {
		return fail("bpm", "Please enter a valid number")
	}
	if v <= 0 {
		return fail("bpm", "Heart rate must be greater than 0")
	}
	if v > MaxHeartRate {
		return fail("bpm", "Heart rate seems too high")
	}
	return nil
}

// ValidateHabitName checks a habit name. Length is counted in runes.
func ValidateHabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fail("name", "Habit name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxHabitNameRune {
		return fail("name", "Habit name is too long (max 50 characters)")
	}
	return nil
}

// ValidateFrequency checks that every entry is a distinct weekday abbreviation.
func ValidateFrequency(days []string) error {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if !isWeekdayAbbrev(d) {
			return fail("frequency", fmt.Sprintf("Unknown day %q (use Sun, Mon, Tue, Wed, Thu, Fri, Sat)", d))
		}
		if seen[d] {
			return fail("frequency", fmt.Sprintf("Day %q is listed more than once", d))
		}
		seen[d] = true
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(s string) error {
	if _, err := dates.ParseDate(s); err != nil {
		return fail("date", "Please enter a date as YYYY-MM-DD")
	}
	return nil
}

func isWeekdayAbbrev(s string) bool {
	for _, w := range models.Weekdays {
		if s == w {
			return true
		}
	}
	return false
}
