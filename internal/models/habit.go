// ABOUTME: Habit model with weekly schedule and per-date completion set.
// ABOUTME: Mutations return new values; completion toggling keeps dates unique.
package models

import (
	"slices"
	"time"
)

// Weekdays lists the schedule abbreviations in time.Weekday order (Sunday first).
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayAbbrev returns the schedule abbreviation for d.
func WeekdayAbbrev(d time.Weekday) string {
	return Weekdays[int(d)%7]
}

// Habit is a recurring custom activity scheduled on a set of weekdays.
type Habit struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Description    *string   `json:"description,omitempty" yaml:"description,omitempty"`
	Frequency      []string  `json:"frequency" yaml:"frequency"`
	CreatedAt      time.Time `json:"createdAt" yaml:"created_at"`
	CompletedDates []string  `json:"completedDates" yaml:"completed_dates"`
	Color          *string   `json:"color,omitempty" yaml:"color,omitempty"`
}

// NewHabit creates a habit scheduled on the given weekdays.
// An empty frequency schedules the habit every day.
func NewHabit(name string, frequency []string, createdAt time.Time) Habit {
	if len(frequency) == 0 {
		frequency = slices.Clone(Weekdays)
	}
	return Habit{
		ID:             NewID(),
		Name:           name,
		Frequency:      slices.Clone(frequency),
		CreatedAt:      createdAt,
		CompletedDates: []string{},
	}
}

// WithDescription returns a copy of h with the description set.
func (h Habit) WithDescription(description string) Habit {
	h.Description = optional(description)
	return h
}

// WithColor returns a copy of h with the display color set.
func (h Habit) WithColor(color string) Habit {
	h.Color = optional(color)
	return h
}

// IsScheduledOn reports whether the habit is due on the given weekday.
func (h Habit) IsScheduledOn(d time.Weekday) bool {
	return slices.Contains(h.Frequency, WeekdayAbbrev(d))
}

// IsCompletedOn reports whether the habit was completed on date (YYYY-MM-DD).
func (h Habit) IsCompletedOn(date string) bool {
	return slices.Contains(h.CompletedDates, date)
}

// ToggleCompletion returns a copy of h with date added to, or removed from,
// its completed dates.
func (h Habit) ToggleCompletion(date string) Habit {
	out := h.Clone()
	if i := slices.Index(out.CompletedDates, date); i >= 0 {
		out.CompletedDates = slices.Delete(out.CompletedDates, i, i+1)
		return out
	}
	out.CompletedDates = append(out.CompletedDates, date)
	return out
}

// Clone returns a deep copy of h.
func (h Habit) Clone() Habit {
	out := h
	out.Frequency = slices.Clone(h.Frequency)
	out.CompletedDates = slices.Clone(h.CompletedDates)
	if out.CompletedDates == nil {
		out.CompletedDates = []string{}
	}
	out.Description = cloneString(h.Description)
	out.Color = cloneString(h.Color)
	return out
}

// HabitUpdate holds the fields of a partial habit update. Nil fields are left unchanged.
type HabitUpdate struct {
	Name        *string
	Description *string
	Frequency   []string
	Color       *string
}

// Apply returns a copy of h with the update's non-nil fields applied.
func (u HabitUpdate) Apply(h Habit) Habit {
	out := h.Clone()
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Description != nil {
		out.Description = optional(*u.Description)
	}
	if u.Frequency != nil {
		out.Frequency = slices.Clone(u.Frequency)
	}
	if u.Color != nil {
		out.Color = optional(*u.Color)
	}
	return out
}
