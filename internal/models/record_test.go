// ABOUTME: Tests for health record constructors and ID generation.
// ABOUTME: Validates dates, timestamps, notes, and ID uniqueness.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("NewID returned duplicate %s", id)
		}
		seen[id] = true

		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("NewID returned unparseable ID %q: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Errorf("ID version = %d, want 7", parsed.Version())
		}
	}
}

func TestNewIDSortsByCreation(t *testing.T) {
	first := NewID()
	time.Sleep(2 * time.Millisecond)
	second := NewID()
	if first >= second {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestNewWaterIntake(t *testing.T) {
	at := time.Date(2025, 3, 9, 7, 30, 0, 0, time.Local)
	w := NewWaterIntake(250, at)

	if w.ID == "" {
		t.Error("expected ID to be set")
	}
	if w.Amount != 250 {
		t.Errorf("Amount = %v, want 250", w.Amount)
	}
	if w.Date != "2025-03-09" {
		t.Errorf("Date = %s, want 2025-03-09", w.Date)
	}
	if !w.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", w.Timestamp, at)
	}
}

func TestRecordDateIsLocalCalendarDay(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("PDT", -7*60*60)
	t.Cleanup(func() { time.Local = saved })

	at := time.Date(2025, 6, 18, 2, 0, 0, 0, time.UTC)
	if got := NewWaterIntake(250, at).Date; got != "2025-06-17" {
		t.Errorf("water Date = %s, want 2025-06-17", got)
	}
	if got := NewHeartRate(70, at).Date; got != "2025-06-17" {
		t.Errorf("heart rate Date = %s, want 2025-06-17", got)
	}
}

func TestNewStepCount(t *testing.T) {
	at := time.Date(2025, 1, 1, 23, 59, 0, 0, time.Local)
	s := NewStepCount(8421, at)

	if s.Count != 8421 {
		t.Errorf("Count = %d, want 8421", s.Count)
	}
	if s.Date != "2025-01-01" {
		t.Errorf("Date = %s, want 2025-01-01", s.Date)
	}
}

func TestWithNote(t *testing.T) {
	at := time.Now()

	w := NewWeight(82.5, at).WithNote("after run")
	if w.Note == nil || *w.Note != "after run" {
		t.Errorf("Weight note = %v, want 'after run'", w.Note)
	}

	bp := NewBloodPressure(120, 80, at).WithNote("")
	if bp.Note != nil {
		t.Errorf("expected empty note to be dropped, got %q", *bp.Note)
	}

	hr := NewHeartRate(64, at).WithNote("resting")
	if hr.Note == nil || *hr.Note != "resting" {
		t.Errorf("HeartRate note = %v, want 'resting'", hr.Note)
	}
	if hr.BPM != 64 {
		t.Errorf("BPM = %d, want 64", hr.BPM)
	}
}

func TestWithNoteDoesNotMutateOriginal(t *testing.T) {
	w := NewWeight(70, time.Now())
	_ = w.WithNote("changed")
	if w.Note != nil {
		t.Error("WithNote mutated the receiver")
	}
}
