// ABOUTME: HealthDataset aggregate root and Category enum.
// ABOUTME: The dataset holds one ordered sequence per record type plus habits.
package models

import (
	"fmt"
	"slices"
	"strings"
)

// Category identifies a kind of health record.
type Category string

const (
	CategoryWater         Category = "water"
	CategorySteps         Category = "steps"
	CategoryWeight        Category = "weight"
	CategoryBloodPressure Category = "blood-pressure"
	CategoryHeartRate     Category = "heart-rate"
	CategoryHabit         Category = "habit"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryWater, CategorySteps, CategoryWeight,
	CategoryBloodPressure, CategoryHeartRate, CategoryHabit,
}

// CategoryUnits maps record categories to their display units.
var CategoryUnits = map[Category]string{
	CategoryWater:         "ml",
	CategorySteps:         "steps",
	CategoryWeight:        "kg",
	CategoryBloodPressure: "mmHg",
	CategoryHeartRate:     "bpm",
}

var categoryAliases = map[string]Category{
	"water":          CategoryWater,
	"steps":          CategorySteps,
	"step":           CategorySteps,
	"weight":         CategoryWeight,
	"blood-pressure": CategoryBloodPressure,
	"blood_pressure": CategoryBloodPressure,
	"bp":             CategoryBloodPressure,
	"heart-rate":     CategoryHeartRate,
	"heart_rate":     CategoryHeartRate,
	"hr":             CategoryHeartRate,
	"habit":          CategoryHabit,
	"habits":         CategoryHabit,
}

// ParseCategory resolves a category name or alias.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown category: %s", s)
	}
	return c, nil
}

// HealthDataset is the aggregate of every record collection.
type HealthDataset struct {
	WaterIntake    []WaterIntake   `json:"waterIntake" yaml:"water_intake"`
	StepCounts     []StepCount     `json:"stepCounts" yaml:"step_counts"`
	Weights        []Weight        `json:"weights" yaml:"weights"`
	BloodPressures []BloodPressure `json:"bloodPressures" yaml:"blood_pressures"`
	HeartRates     []HeartRate     `json:"heartRates" yaml:"heart_rates"`
	Habits         []Habit         `json:"habits" yaml:"habits"`
}

// NewHealthDataset returns an empty dataset with non-nil collections.
func NewHealthDataset() *HealthDataset {
	return &HealthDataset{
		WaterIntake:    []WaterIntake{},
		StepCounts:     []StepCount{},
		Weights:        []Weight{},
		BloodPressures: []BloodPressure{},
		HeartRates:     []HeartRate{},
		Habits:         []Habit{},
	}
}

// Normalize replaces nil collections with empty ones and collapses repeated
// habit completion dates.
func (d *HealthDataset) Normalize() {
	if d.WaterIntake == nil {
		d.WaterIntake = []WaterIntake{}
	}
	if d.StepCounts == nil {
		d.StepCounts = []StepCount{}
	}
	if d.Weights == nil {
		d.Weights = []Weight{}
	}
	if d.BloodPressures == nil {
		d.BloodPressures = []BloodPressure{}
	}
	if d.HeartRates == nil {
		d.HeartRates = []HeartRate{}
	}
	if d.Habits == nil {
		d.Habits = []Habit{}
	}
	for i := range d.Habits {
		d.Habits[i].CompletedDates = uniqueDates(d.Habits[i].CompletedDates)
	}
}

// uniqueDates drops repeated dates, keeping first occurrences in order.
func uniqueDates(in []string) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *HealthDataset) Clone() *HealthDataset {
	out := &HealthDataset{
		WaterIntake:    slices.Clone(d.WaterIntake),
		StepCounts:     slices.Clone(d.StepCounts),
		Weights:        slices.Clone(d.Weights),
		BloodPressures: slices.Clone(d.BloodPressures),
		HeartRates:     slices.Clone(d.HeartRates),
		Habits:         make([]Habit, len(d.Habits)),
	}
	for i := range out.Weights {
		out.Weights[i].Note = cloneString(out.Weights[i].Note)
	}
	for i := range out.BloodPressures {
		out.BloodPressures[i].Note = cloneString(out.BloodPressures[i].Note)
	}
	for i := range out.HeartRates {
		out.HeartRates[i].Note = cloneString(out.HeartRates[i].Note)
	}
	for i, h := range d.Habits {
		out.Habits[i] = h.Clone()
	}
	out.Normalize()
	return out
}

// Len returns the number of records held for a category.
func (d *HealthDataset) Len(c Category) int {
	switch c {
	case CategoryWater:
		return len(d.WaterIntake)
	case CategorySteps:
		return len(d.StepCounts)
	case CategoryWeight:
		return len(d.Weights)
	case CategoryBloodPressure:
		return len(d.BloodPressures)
	case CategoryHeartRate:
		return len(d.HeartRates)
	case CategoryHabit:
		return len(d.Habits)
	default:
		return 0
	}
}

// FindHabit returns the index of the habit with the given ID, or -1.
func (d *HealthDataset) FindHabit(id string) int {
	return slices.IndexFunc(d.Habits, func(h Habit) bool { return h.ID == id })
}
