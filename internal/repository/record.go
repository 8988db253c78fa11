// ABOUTME: Raw-input entry points that validate, construct and store a record.
// ABOUTME: Invalid input is rejected before anything in memory or storage changes.
package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/validation"
)

// RecordWater validates amount (ml) and logs it at the given time. A zero
// time means now.
func (r *Repository) RecordWater(ctx context.Context, amount string, at time.Time) (models.WaterIntake, error) {
	if err := validation.ValidateWaterIntake(amount); err != nil {
		return models.WaterIntake{}, err
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	w := models.NewWaterIntake(v, r.at(at))
	return w, r.AddWaterIntake(ctx, w)
}

// RecordSteps validates and logs a step count.
func (r *Repository) RecordSteps(ctx context.Context, count string, at time.Time) (models.StepCount, error) {
	if err := validation.ValidateStepCount(count); err != nil {
		return models.StepCount{}, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(count))
	s := models.NewStepCount(n, r.at(at))
	return s, r.AddStepCount(ctx, s)
}

// RecordWeight validates and logs a weight in kg.
func (r *Repository) RecordWeight(ctx context.Context, value, note string, at time.Time) (models.Weight, error) {
	if err := validation.ValidateWeight(value); err != nil {
		return models.Weight{}, err
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	w := models.NewWeight(v, r.at(at)).WithNote(note)
	return w, r.AddWeight(ctx, w)
}

// RecordBloodPressure validates and logs a systolic/diastolic reading.
func (r *Repository) RecordBloodPressure(ctx context.Context, systolic, diastolic, note string, at time.Time) (models.BloodPressure, error) {
	if err := validation.ValidateBloodPressure(systolic, diastolic); err != nil {
		return models.BloodPressure{}, err
	}
	s, _ := strconv.ParseFloat(strings.TrimSpace(systolic), 64)
	d, _ := strconv.ParseFloat(strings.TrimSpace(diastolic), 64)
	bp := models.NewBloodPressure(s, d, r.at(at)).WithNote(note)
	return bp, r.AddBloodPressure(ctx, bp)
}

// RecordHeartRate validates and logs a heart rate in bpm.
func (r *Repository) RecordHeartRate(ctx context.Context, bpm, note string, at time.Time) (models.HeartRate, error) {
	if err := validation.ValidateHeartRate(bpm); err != nil {
		return models.HeartRate{}, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(bpm))
	hr := models.NewHeartRate(n, r.at(at)).WithNote(note)
	return hr, r.AddHeartRate(ctx, hr)
}

func (r *Repository) at(t time.Time) time.Time {
	if t.IsZero() {
		return r.clock()
	}
	return t
}
