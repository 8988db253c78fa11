// ABOUTME: Habit lifecycle operations: add, update, delete, toggle and lookup.
// ABOUTME: Habits are addressed by ID; Resolve also accepts a name or unique ID prefix.
package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/validation"
)

// ErrHabitNotFound is returned when no habit matches an ID or reference.
var ErrHabitNotFound = errors.New("habit not found")

// AddHabit validates and stores a new habit. An empty frequency schedules it every day.
func (r *Repository) AddHabit(ctx context.Context, name string, frequency []string, description, color string) (models.Habit, error) {
	if err := validation.ValidateHabitName(name); err != nil {
		return models.Habit{}, err
	}
	if err := validation.ValidateFrequency(frequency); err != nil {
		return models.Habit{}, err
	}

	h := models.NewHabit(strings.TrimSpace(name), frequency, r.clock()).
		WithDescription(description).
		WithColor(color)

	err := r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.Habits = append(ds.Habits, h)
		return nil
	}, models.CategoryHabit)
	return h.Clone(), err
}

// UpdateHabit applies a partial update to the habit with id.
func (r *Repository) UpdateHabit(ctx context.Context, id string, u models.HabitUpdate) (models.Habit, error) {
	if u.Name != nil {
		if err := validation.ValidateHabitName(*u.Name); err != nil {
			return models.Habit{}, err
		}
		trimmed := strings.TrimSpace(*u.Name)
		u.Name = &trimmed
	}
	if u.Frequency != nil {
		if err := validation.ValidateFrequency(u.Frequency); err != nil {
			return models.Habit{}, err
		}
		if len(u.Frequency) == 0 {
			u.Frequency = slices.Clone(models.Weekdays)
		}
	}

	var updated models.Habit
	err := r.mutate(ctx, func(ds *models.HealthDataset) error {
		i := ds.FindHabit(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
		}
		ds.Habits[i] = u.Apply(ds.Habits[i])
		updated = ds.Habits[i].Clone()
		return nil
	}, models.CategoryHabit)
	return updated, err
}

// DeleteHabit removes the habit with id.
func (r *Repository) DeleteHabit(ctx context.Context, id string) error {
	return r.mutate(ctx, func(ds *models.HealthDataset) error {
		i := ds.FindHabit(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
		}
		ds.Habits = slices.Delete(ds.Habits, i, i+1)
		return nil
	}, models.CategoryHabit)
}

// ToggleHabitCompletion marks the habit done on date, or undoes it if it
// was already done. It returns the updated habit.
func (r *Repository) ToggleHabitCompletion(ctx context.Context, id, date string) (models.Habit, error) {
	if err := validation.ValidateDate(date); err != nil {
		return models.Habit{}, err
	}

	var updated models.Habit
	err := r.mutate(ctx, func(ds *models.HealthDataset) error {
		i := ds.FindHabit(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
		}
		ds.Habits[i] = ds.Habits[i].ToggleCompletion(date)
		updated = ds.Habits[i].Clone()
		return nil
	}, models.CategoryHabit)
	return updated, err
}

// ResolveHabit finds a habit by exact ID, case-insensitive name, or unique
// ID prefix, in that order.
func (r *Repository) ResolveHabit(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Habit{}, fmt.Errorf("%w: empty reference", ErrHabitNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.data.FindHabit(ref); i >= 0 {
		return r.data.Habits[i].Clone(), nil
	}

	var byName []models.Habit
	for _, h := range r.data.Habits {
		if strings.EqualFold(h.Name, ref) {
			byName = append(byName, h)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0].Clone(), nil
	case 0:
	default:
		return models.Habit{}, fmt.Errorf("ambiguous name %q: matches %d habits, use the ID", ref, len(byName))
	}

	var byPrefix []models.Habit
	for _, h := range r.data.Habits {
		if strings.HasPrefix(h.ID, ref) {
			byPrefix = append(byPrefix, h)
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0].Clone(), nil
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
	default:
		return models.Habit{}, fmt.Errorf("ambiguous prefix %s: matches multiple habits", ref)
	}
}
