// ABOUTME: CLI commands for daily intake totals: water and steps.
// ABOUTME: Each has add, today and history subcommands with goal progress.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/harperreed/healthtrack/internal/ui"
	"github.com/spf13/cobra"
)

// intake describes a category that is summed per day against a goal.
type intake struct {
	name     string
	short    string
	argName  string
	example  string
	unit     string
	category models.Category
	points   func(*models.HealthDataset) []stats.Point
	goal     func() float64
	record   func(ctx context.Context, value string, at time.Time) (id, date string, err error)
}

var waterIntake = intake{
	name:     "water",
	short:    "Track water intake in millilitres",
	argName:  "ml",
	example:  "healthtrack water add 250",
	unit:     "ml",
	category: models.CategoryWater,
	points:   func(ds *models.HealthDataset) []stats.Point { return stats.WaterPoints(ds.WaterIntake) },
	goal:     func() float64 { return goals().WaterML },
	record: func(ctx context.Context, value string, at time.Time) (string, string, error) {
		w, err := repo.RecordWater(ctx, value, at)
		return w.ID, w.Date, err
	},
}

var stepsIntake = intake{
	name:     "steps",
	short:    "Track step counts",
	argName:  "count",
	example:  "healthtrack steps add 4200",
	unit:     "steps",
	category: models.CategorySteps,
	points:   func(ds *models.HealthDataset) []stats.Point { return stats.StepPoints(ds.StepCounts) },
	goal:     func() float64 { return goals().Steps },
	record: func(ctx context.Context, value string, at time.Time) (string, string, error) {
		s, err := repo.RecordSteps(ctx, value, at)
		return s.ID, s.Date, err
	},
}

func (in intake) command() *cobra.Command {
	parent := &cobra.Command{
		Use:   in.name,
		Short: in.short,
	}

	var at string
	add := &cobra.Command{
		Use:   fmt.Sprintf("add <%s>", in.argName),
		Short: fmt.Sprintf("Add %s", in.name),
		Long: fmt.Sprintf(`Add an entry. Entries on the same day are summed against the daily goal.

Examples:
  %s
  %s --at "2025-06-14 07:00"`, in.example, in.example),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseAt(at)
			if err != nil {
				return err
			}
			_, date, err := in.record(cmd.Context(), args[0], t)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			points := in.points(repo.Snapshot())
			total := stats.DailyTotal(points, date)
			success(out, "Added %s %s", args[0], in.unit)
			fmt.Fprintf(out, "  %s %s\n", faint.Sprint(date), ui.ProgressBar(stats.GoalProgress(total, in.goal()), 20))
			fmt.Fprintf(out, "  %.0f / %.0f %s\n", total, in.goal(), in.unit)
			return nil
		},
	}
	add.Flags().StringVar(&at, "at", "", "timestamp (YYYY-MM-DD HH:MM)")

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's entries and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			day := dates.FormatDate(repo.Now())
			entries := stats.Between(in.points(repo.Snapshot()), day, day)
			total := stats.DailyTotal(entries, day)

			fmt.Fprintln(out, ui.Heading(fmt.Sprintf("%s on %s", in.name, dates.FormatForDisplay(day))))
			fmt.Fprintf(out, "%s\n", ui.ProgressBar(stats.GoalProgress(total, in.goal()), 30))
			fmt.Fprintf(out, "%.0f / %.0f %s\n", total, in.goal(), in.unit)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries today.")
				return nil
			}
			for _, p := range stats.Newest(entries) {
				fmt.Fprintf(out, "  %s  %.0f %s\n", faint.Sprint(dates.FormatTimeForDisplay(p.Timestamp)), p.Value, in.unit)
			}
			return nil
		},
	}

	var days int
	history := &cobra.Command{
		Use:   "history",
		Short: "Chart daily totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("days must be positive")
			}
			out := cmd.OutOrStdout()
			totals := stats.DailyTotals(in.points(repo.Snapshot()), dates.DateRange(days, repo.Now()))

			fmt.Fprintln(out, ui.Heading(fmt.Sprintf("%s, last %d days", in.name, days)))
			fmt.Fprintln(out, ui.BarChart(stats.DailySeries(totals, stats.DefaultScale), 30, nil))

			reached := 0
			for _, t := range totals {
				if stats.GoalProgress(t.Total, in.goal()).Reached {
					reached++
				}
			}
			fmt.Fprintf(out, "Goal of %.0f %s reached on %d of %d days\n", in.goal(), in.unit, reached, len(totals))
			return nil
		},
	}
	history.Flags().IntVarP(&days, "days", "d", 7, "number of days")

	parent.AddCommand(add, today, history)
	return parent
}

// parseAt parses an optional --at timestamp; empty means now.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dates.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(waterIntake.command())
	rootCmd.AddCommand(stepsIntake.command())
}
