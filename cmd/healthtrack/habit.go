// ABOUTME: CLI commands for habits: add, list, done, edit and delete.
// ABOUTME: Habits are referenced by ID, case-insensitive name or unique ID prefix.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/harperreed/healthtrack/internal/ui"
	"github.com/spf13/cobra"
)

var (
	habitDays        string
	habitDescription string
	habitColor       string
	habitName        string
	habitDate        string
	habitWindow      int
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits"},
	Short:   "Track habits on a weekly schedule",
	Long: `Track habits scheduled on some days of the week.

A habit's streak counts consecutive scheduled days it was done, walking back
from today (or yesterday if today is not done yet). Days the habit is not
scheduled on never break a streak.

EXAMPLES:

  healthtrack habit add Stretch --days Mon,Wed,Fri
  healthtrack habit done stretch
  healthtrack habit done stretch --date 2025-06-16
  healthtrack habit list`,
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := parseDays(habitDays)
		if err != nil {
			return err
		}
		h, err := repo.AddHabit(cmd.Context(), args[0], days, habitDescription, habitColor)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Added habit %s", h.Name)
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(h.ID), strings.Join(h.Frequency, ","))
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with streaks and completion rates",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if habitWindow <= 0 {
			return fmt.Errorf("days must be positive")
		}
		out := cmd.OutOrStdout()
		ds := repo.Snapshot()
		if len(ds.Habits) == 0 {
			fmt.Fprintln(out, "No habits yet. Add one with 'healthtrack habit add <name>'.")
			return nil
		}

		today := repo.Now()
		week := dates.CurrentWeekDates(today)
		reports := stats.ReportHabits(ds.Habits, dates.DateRange(habitWindow, today), today)

		fmt.Fprintf(out, "%-24s %s  %-7s %s\n", "", weekHeader(), "streak", fmt.Sprintf("%dd", habitWindow))
		for _, r := range reports {
			fmt.Fprintf(out, "%-24s %s  %-7d %s\n",
				truncate(r.Habit.Name, 24), weekRow(r.Habit, week, dates.FormatDate(today)),
				r.Streak, stats.FormatRate(r.CompletionRate))
			fmt.Fprintf(out, "  %s\n", faint.Sprint(r.Habit.ID))
		}
		return nil
	},
}

var habitDoneCmd = &cobra.Command{
	Use:   "done <habit>",
	Short: "Mark a habit done, or undo it if already done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		date := dates.FormatDate(repo.Now())
		switch habitDate {
		case "", "today":
		case "yesterday":
			if date, err = dates.AddDays(date, -1); err != nil {
				return err
			}
		default:
			date = habitDate
		}
		h, err = repo.ToggleHabitCompletion(cmd.Context(), h.ID, date)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if h.IsCompletedOn(date) {
			success(out, "%s done on %s", h.Name, dates.FormatForDisplay(date))
		} else {
			color.New(color.FgYellow).Fprintf(out, "✗ %s undone on %s\n", h.Name, dates.FormatForDisplay(date))
		}
		fmt.Fprintf(out, "  streak: %d\n", stats.Streak(h, repo.Now()))
		return nil
	},
}

var habitEditCmd = &cobra.Command{
	Use:   "edit <habit>",
	Short: "Change a habit's name, days, description or color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.ResolveHabit(args[0])
		if err != nil {
			return err
		}

		var u models.HabitUpdate
		flags := cmd.Flags()
		changed := false
		for _, name := range []string{"name", "days", "description", "color"} {
			changed = changed || flags.Changed(name)
		}
		if !changed {
			return fmt.Errorf("nothing to change: use --name, --days, --description or --color")
		}
		if flags.Changed("name") {
			u.Name = &habitName
		}
		if flags.Changed("days") {
			days, err := parseDays(habitDays)
			if err != nil {
				return err
			}
			if days == nil {
				days = []string{}
			}
			u.Frequency = days
		}
		if flags.Changed("description") {
			u.Description = &habitDescription
		}
		if flags.Changed("color") {
			u.Color = &habitColor
		}

		h, err = repo.UpdateHabit(cmd.Context(), h.ID, u)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Updated habit %s", h.Name)
		return nil
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete <habit>",
	Aliases: []string{"rm"},
	Short:   "Delete a habit and its history",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteHabit(cmd.Context(), h.ID); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted habit %s\n", h.Name)
		return nil
	},
}

// parseDays turns "mon, Wed,friday" into canonical abbreviations.
// Empty input yields nil.
func parseDays(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := dates.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		out = append(out, models.WeekdayAbbrev(d))
	}
	return out, nil
}

func weekHeader() string {
	cells := make([]string, 0, 7)
	for i := range 7 {
		cells = append(cells, dates.WeekdayName(i)[:2])
	}
	return strings.Join(cells, " ")
}

// weekRow renders one cell per day of the current week (Sunday first):
// ✓ done, · missed, blank when not scheduled or still in the future.
func weekRow(h models.Habit, week []string, today string) string {
	cells := make([]string, 0, len(week))
	for i, d := range week {
		switch {
		case h.IsCompletedOn(d):
			cells = append(cells, ui.Good.Render("✓")+" ")
		case d > today || !h.IsScheduledOn(time.Weekday(i)):
			cells = append(cells, "  ")
		default:
			cells = append(cells, ui.Muted.Render("·")+" ")
		}
	}
	return strings.Join(cells, " ")
}

func init() {
	habitAddCmd.Flags().StringVar(&habitDays, "days", "", "scheduled days, e.g. Mon,Wed,Fri (default every day)")
	habitAddCmd.Flags().StringVar(&habitDescription, "description", "", "optional description")
	habitAddCmd.Flags().StringVar(&habitColor, "color", "", "optional display color")

	habitEditCmd.Flags().StringVar(&habitName, "name", "", "new name")
	habitEditCmd.Flags().StringVar(&habitDays, "days", "", "new scheduled days (empty means every day)")
	habitEditCmd.Flags().StringVar(&habitDescription, "description", "", "new description (empty clears it)")
	habitEditCmd.Flags().StringVar(&habitColor, "color", "", "new display color (empty clears it)")

	habitListCmd.Flags().IntVarP(&habitWindow, "days", "d", 7, "completion rate window in days")
	habitDoneCmd.Flags().StringVar(&habitDate, "date", "", "date as YYYY-MM-DD, today or yesterday")

	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitDoneCmd, habitEditCmd, habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}
