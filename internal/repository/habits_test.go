// ABOUTME: Tests for habit add, update, delete, toggle and resolution.
// ABOUTME: Checks validation, completion uniqueness and not-found handling.
package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/validation"
)

func strPtr(s string) *string { return &s }

func TestAddHabit(t *testing.T) {
	ctx := context.Background()
	r, _ := setupTestRepo(t)

	h, err := r.AddHabit(ctx, "  Meditate ", []string{"Mon", "Wed"}, "10 minutes", "#4CAF50")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if h.Name != "Meditate" || len(h.Frequency) != 2 || *h.Description != "10 minutes" || *h.Color != "#4CAF50" {
		t.Errorf("habit = %+v", h)
	}
	if !h.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", h.CreatedAt, fixedNow)
	}

	every, err := r.AddHabit(ctx, "Walk", nil, "", "")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if len(every.Frequency) != 7 || every.Description != nil {
		t.Errorf("default habit = %+v", every)
	}
}

func TestAddHabitValidation(t *testing.T) {
	ctx := context.Background()
	r, _ := setupTestRepo(t)

	tests := []struct {
		name string
		days []string
		want string
	}{
		{"   ", nil, "Habit name cannot be empty"},
		{strings.Repeat("x", 51), nil, "Habit name is too long (max 50 characters)"},
		{"Gym", []string{"Mon", "Funday"}, `Unknown day "Funday" (use Sun, Mon, Tue, Wed, Thu, Fri, Sat)`},
	}
	for _, tt := range tests {
		_, err := r.AddHabit(ctx, tt.name, tt.days, "", "")
		if !errors.Is(err, validation.ErrInvalid) || err.Error() != tt.want {
			t.Errorf("AddHabit(%q) error = %v, want %q", tt.name, err, tt.want)
		}
	}
	if n := len(r.Snapshot().Habits); n != 0 {
		t.Errorf("invalid habits stored: %d", n)
	}
}

func TestToggleHabitCompletion(t *testing.T) {
	ctx := context.Background()
	r, _ := setupTestRepo(t)
	h, _ := r.AddHabit(ctx, "Floss", nil, "", "")

	got, err := r.ToggleHabitCompletion(ctx, h.ID, "2025-06-18")
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if !got.IsCompletedOn("2025-06-18") {
		t.Error("expected completion after first toggle")
	}

	got, err = r.ToggleHabitCompletion(ctx, h.ID, "2025-06-18")
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if got.IsCompletedOn("2025-06-18") || len(got.CompletedDates) != 0 {
		t.Errorf("expected no completions, got %v", got.CompletedDates)
	}

	if _, err := r.ToggleHabitCompletion(ctx, h.ID, "18/06/2025"); !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("bad date error = %v", err)
	}
	if _, err := r.ToggleHabitCompletion(ctx, "nope", "2025-06-18"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("unknown habit error = %v", err)
	}
}

func TestUpdateHabit(t *testing.T) {
	ctx := context.Background()
	r, _ := setupTestRepo(t)
	h, _ := r.AddHabit(ctx, "Run", []string{"Sat"}, "", "")

	got, err := r.UpdateHabit(ctx, h.ID, models.HabitUpdate{
		Name:        strPtr(" Long run "),
		Description: strPtr("easy pace"),
		Frequency:   []string{"Sat", "Sun"},
	})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if got.Name != "Long run" || *got.Description != "easy pace" || len(got.Frequency) != 2 {
		t.Errorf("updated = %+v", got)
	}

	got, err = r.UpdateHabit(ctx, h.ID, models.HabitUpdate{Frequency: []string{}})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if len(got.Frequency) != 7 {
		t.Errorf("empty frequency should mean every day, got %v", got.Frequency)
	}

	if _, err := r.UpdateHabit(ctx, h.ID, models.HabitUpdate{Name: strPtr("")}); !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("empty name error = %v", err)
	}
	if _, err := r.UpdateHabit(ctx, "missing", models.HabitUpdate{}); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("missing habit error = %v", err)
	}
}

func TestDeleteHabit(t *testing.T) {
	ctx := context.Background()
	r, _ := setupTestRepo(t)
	a, _ := r.AddHabit(ctx, "A", nil, "", "")
	b, _ := r.AddHabit(ctx, "B", nil, "", "")

	if err := r.DeleteHabit(ctx, a.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	habits := r.Snapshot().Habits
	if len(habits) != 1 || habits[0].ID != b.ID {
		t.Errorf("habits after delete = %+v", habits)
	}
	if err := r.DeleteHabit(ctx, a.ID); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestResolveHabit(t *testing.T) {
	ctx := context.Background()
	r, _ := setupTestRepo(t)
	water, _ := r.AddHabit(ctx, "Drink water", nil, "", "")
	_, _ = r.AddHabit(ctx, "Stretch", nil, "", "")
	_, _ = r.AddHabit(ctx, "Stretch", []string{"Mon"}, "", "")

	got, err := r.ResolveHabit(water.ID)
	if err != nil || got.ID != water.ID {
		t.Errorf("by ID = %v, %v", got.ID, err)
	}

	got, err = r.ResolveHabit("drink WATER")
	if err != nil || got.ID != water.ID {
		t.Errorf("by name = %v, %v", got.ID, err)
	}

	if _, err := r.ResolveHabit("stretch"); err == nil || !strings.Contains(err.Error(), "ambiguous name") {
		t.Errorf("duplicate name error = %v", err)
	}

	if _, err := r.ResolveHabit("zzzz"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("unknown ref error = %v", err)
	}
	if _, err := r.ResolveHabit(" "); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("empty ref error = %v", err)
	}

	// A long prefix reaches the random bits of the ID, so it is unique.
	got, err = r.ResolveHabit(water.ID[:30])
	if err != nil || got.ID != water.ID {
		t.Errorf("by prefix = %v, %v", got.ID, err)
	}
}
