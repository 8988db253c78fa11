// ABOUTME: Health record value types for water, steps, weight, blood pressure, heart rate.
// ABOUTME: Records carry a timestamp-derived ID, a local calendar date, and a timestamp.
package models

import (
	"time"

	"github.com/google/uuid"
)

// dateLayout is the calendar date format used for record partitioning.
const dateLayout = "2006-01-02"

// NewID returns a timestamp-derived identifier (UUID version 7).
// The leading 48 bits hold the Unix millisecond timestamp, so IDs sort by
// creation time and are never reused.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// WaterIntake is a single drink logged in millilitres.
type WaterIntake struct {
	ID        string    `json:"id" yaml:"id"`
	Amount    float64   `json:"amount" yaml:"amount"`
	Date      string    `json:"date" yaml:"date"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewWaterIntake creates a water entry recorded at the given time.
func NewWaterIntake(amount float64, at time.Time) WaterIntake {
	return WaterIntake{
		ID:        NewID(),
		Amount:    amount,
		Date:      localDate(at),
		Timestamp: at,
	}
}

// StepCount is a number of steps logged for a day.
type StepCount struct {
	ID        string    `json:"id" yaml:"id"`
	Count     int       `json:"count" yaml:"count"`
	Date      string    `json:"date" yaml:"date"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewStepCount creates a step entry recorded at the given time.
func NewStepCount(count int, at time.Time) StepCount {
	return StepCount{
		ID:        NewID(),
		Count:     count,
		Date:      localDate(at),
		Timestamp: at,
	}
}

// Weight is a body weight measurement in kilograms.
type Weight struct {
	ID        string    `json:"id" yaml:"id"`
	Value     float64   `json:"value" yaml:"value"`
	Date      string    `json:"date" yaml:"date"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Note      *string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewWeight creates a weight entry recorded at the given time.
func NewWeight(value float64, at time.Time) Weight {
	return Weight{
		ID:        NewID(),
		Value:     value,
		Date:      localDate(at),
		Timestamp: at,
	}
}

// WithNote returns a copy of w carrying the note. Empty notes are dropped.
func (w Weight) WithNote(note string) Weight {
	w.Note = optional(note)
	return w
}

// BloodPressure is a systolic/diastolic reading in mmHg.
type BloodPressure struct {
	ID        string    `json:"id" yaml:"id"`
	Systolic  float64   `json:"systolic" yaml:"systolic"`
	Diastolic float64   `json:"diastolic" yaml:"diastolic"`
	Date      string    `json:"date" yaml:"date"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Note      *string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewBloodPressure creates a blood pressure entry recorded at the given time.
func NewBloodPressure(systolic, diastolic float64, at time.Time) BloodPressure {
	return BloodPressure{
		ID:        NewID(),
		Systolic:  systolic,
		Diastolic: diastolic,
		Date:      localDate(at),
		Timestamp: at,
	}
}

// WithNote returns a copy of bp carrying the note. Empty notes are dropped.
func (bp BloodPressure) WithNote(note string) BloodPressure {
	bp.Note = optional(note)
	return bp
}

// HeartRate is a pulse reading in beats per minute.
type HeartRate struct {
	ID        string    `json:"id" yaml:"id"`
	BPM       int       `json:"bpm" yaml:"bpm"`
	Date      string    `json:"date" yaml:"date"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Note      *string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewHeartRate creates a heart rate entry recorded at the given time.
func NewHeartRate(bpm int, at time.Time) HeartRate {
	return HeartRate{
		ID:        NewID(),
		BPM:       bpm,
		Date:      localDate(at),
		Timestamp: at,
	}
}

// WithNote returns a copy of hr carrying the note. Empty notes are dropped.
func (hr HeartRate) WithNote(note string) HeartRate {
	hr.Note = optional(note)
	return hr
}

// localDate is the calendar date of at in the local time zone.
func localDate(at time.Time) string {
	return at.In(time.Local).Format(dateLayout)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
