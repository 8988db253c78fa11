// ABOUTME: Validators for whole records arriving from imports or old stores.
// ABOUTME: They apply the same limits and messages as the raw-input validators.
package validation

import (
	"strconv"

	"github.com/harperreed/healthtrack/internal/models"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkIdentity(id, date string) error {
	if id == "" {
		return fail("id", "Record is missing an ID")
	}
	return ValidateDate(date)
}

// CheckWaterIntake validates a stored water entry.
func CheckWaterIntake(r models.WaterIntake) error {
	if err := ValidateWaterIntake(num(r.Amount)); err != nil {
		return err
	}
	return checkIdentity(r.ID, r.Date)
}

// CheckStepCount validates a stored step entry.
func CheckStepCount(r models.StepCount) error {
	if err := ValidateStepCount(strconv.Itoa(r.Count)); err != nil {
		return err
	}
	return checkIdentity(r.ID, r.Date)
}

// CheckWeight validates a stored weight entry.
func CheckWeight(r models.Weight) error {
	if err := ValidateWeight(num(r.Value)); err != nil {
		return err
	}
	return checkIdentity(r.ID, r.Date)
}

// CheckBloodPressure validates a stored blood pressure entry.
func CheckBloodPressure(r models.BloodPressure) error {
	if err := ValidateBloodPressure(num(r.Systolic), num(r.Diastolic)); err != nil {
		return err
	}
	return checkIdentity(r.ID, r.Date)
}

// CheckHeartRate validates a stored heart rate entry.
func CheckHeartRate(r models.HeartRate) error {
	if err := ValidateHeartRate(strconv.Itoa(r.BPM)); err != nil {
		return err
	}
	return checkIdentity(r.ID, r.Date)
}

// CheckHabit validates a stored habit. Repeated completion dates are not an
// error here; Normalize collapses them.
func CheckHabit(h models.Habit) error {
	if h.ID == "" {
		return fail("id", "Record is missing an ID")
	}
	if err := ValidateHabitName(h.Name); err != nil {
		return err
	}
	if err := ValidateFrequency(h.Frequency); err != nil {
		return err
	}
	for _, d := range h.CompletedDates {
		if err := ValidateDate(d); err != nil {
			return err
		}
	}
	return nil
}
