// ABOUTME: Tests for the Habit model.
// ABOUTME: Covers scheduling, completion toggling, cloning, and partial updates.
package models

import (
	"slices"
	"testing"
	"time"
)

func TestNewHabitDefaultsToEveryDay(t *testing.T) {
	h := NewHabit("Meditate", nil, time.Now())

	if len(h.Frequency) != 7 {
		t.Fatalf("Frequency = %v, want all weekdays", h.Frequency)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !h.IsScheduledOn(d) {
			t.Errorf("expected habit scheduled on %s", d)
		}
	}
	if h.CompletedDates == nil {
		t.Error("expected non-nil CompletedDates")
	}
}

func TestIsScheduledOn(t *testing.T) {
	h := NewHabit("Gym", []string{"Mon", "Wed", "Fri"}, time.Now())

	tests := []struct {
		day  time.Weekday
		want bool
	}{
		{time.Sunday, false},
		{time.Monday, true},
		{time.Tuesday, false},
		{time.Wednesday, true},
		{time.Thursday, false},
		{time.Friday, true},
		{time.Saturday, false},
	}
	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			if got := h.IsScheduledOn(tt.day); got != tt.want {
				t.Errorf("IsScheduledOn(%s) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestToggleCompletion(t *testing.T) {
	h := NewHabit("Read", nil, time.Now())

	on := h.ToggleCompletion("2025-02-01")
	if !on.IsCompletedOn("2025-02-01") {
		t.Fatal("expected date to be completed after first toggle")
	}
	if h.IsCompletedOn("2025-02-01") {
		t.Error("ToggleCompletion mutated the receiver")
	}

	off := on.ToggleCompletion("2025-02-01")
	if off.IsCompletedOn("2025-02-01") {
		t.Error("expected date removed after second toggle")
	}
	if len(off.CompletedDates) != 0 {
		t.Errorf("CompletedDates = %v, want empty", off.CompletedDates)
	}
}

func TestToggleCompletionKeepsDatesUnique(t *testing.T) {
	h := NewHabit("Read", nil, time.Now())
	h = h.ToggleCompletion("2025-02-01")
	h = h.ToggleCompletion("2025-02-02")
	h = h.ToggleCompletion("2025-02-01")
	h = h.ToggleCompletion("2025-02-01")

	count := 0
	for _, d := range h.CompletedDates {
		if d == "2025-02-01" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("2025-02-01 appears %d times, want 1", count)
	}
}

func TestHabitUpdateApply(t *testing.T) {
	h := NewHabit("Walk", []string{"Sat"}, time.Now()).WithColor("#4CAF50")

	name := "Evening walk"
	desc := "30 minutes"
	updated := HabitUpdate{
		Name:        &name,
		Description: &desc,
		Frequency:   []string{"Sat", "Sun"},
	}.Apply(h)

	if updated.Name != "Evening walk" {
		t.Errorf("Name = %s, want Evening walk", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "30 minutes" {
		t.Errorf("Description = %v, want 30 minutes", updated.Description)
	}
	if !slices.Equal(updated.Frequency, []string{"Sat", "Sun"}) {
		t.Errorf("Frequency = %v", updated.Frequency)
	}
	if updated.Color == nil || *updated.Color != "#4CAF50" {
		t.Error("expected color to be unchanged")
	}
	if updated.ID != h.ID {
		t.Error("expected ID to be unchanged")
	}
	if h.Name != "Walk" {
		t.Error("Apply mutated the original habit")
	}
}
