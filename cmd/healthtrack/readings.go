// ABOUTME: CLI commands for point readings: weight, blood pressure and heart rate.
// ABOUTME: Each has add, list and stats subcommands; pressure and pulse are classified.
package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/harperreed/healthtrack/internal/classify"
	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/harperreed/healthtrack/internal/ui"
	"github.com/spf13/cobra"
)

var (
	readingAt    string
	readingNote  string
	readingLimit int
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight in kilograms",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Add a weight reading",
	Long: `Add a weight reading in kilograms (20 to 500).

Examples:
  healthtrack weight add 81.4
  healthtrack weight add 81.4 --note "after run" --at "2025-06-14 07:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseAt(readingAt)
		if err != nil {
			return err
		}
		w, err := repo.RecordWeight(cmd.Context(), args[0], readingNote, at)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Added weight")
		trend := stats.Trend(stats.WeightPoints(repo.Snapshot().Weights))
		fmt.Fprintf(out, "  %s %.1f kg %s\n", faint.Sprint(w.Date), w.Value, ui.TrendArrow(trend))
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent weight readings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		weights := repo.Snapshot().Weights
		if len(weights) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No weight readings found.")
			return nil
		}
		rows := newestFirst(weights, readingLimit, func(w models.Weight) time.Time { return w.Timestamp })
		for _, w := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %6.1f kg%s\n",
				faint.Sprint(dates.FormatDateTimeForDisplay(w.Timestamp)), w.Value, noteSuffix(w.Note))
		}
		return nil
	},
}

var weightStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weight statistics and chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		points := stats.WeightPoints(repo.Snapshot().Weights)
		printSummary(cmd.OutOrStdout(), "Weight", "kg", points, "%.1f")
		return nil
	},
}

var bpCmd = &cobra.Command{
	Use:     "bp",
	Aliases: []string{"blood-pressure"},
	Short:   "Track blood pressure in mmHg",
}

var bpAddCmd = &cobra.Command{
	Use:   "add <systolic> <diastolic>",
	Short: "Add a blood pressure reading",
	Long: `Add a blood pressure reading. The reading is classified as Normal,
Elevated, High (Stage 1), High (Stage 2) or Hypertensive Crisis.

Examples:
  healthtrack bp add 120 80
  healthtrack bp add 135 85 --note "morning"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseAt(readingAt)
		if err != nil {
			return err
		}
		bp, err := repo.RecordBloodPressure(cmd.Context(), args[0], args[1], readingNote, at)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		band := classify.BloodPressure(bp.Systolic, bp.Diastolic)
		success(out, "Added blood pressure")
		fmt.Fprintf(out, "  %s %.0f/%.0f mmHg  %s\n", faint.Sprint(bp.Date), bp.Systolic, bp.Diastolic, ui.BandBadge(band))
		if band.Severity >= classify.SeverityHigh {
			fmt.Fprintf(out, "  %s\n", ui.SeverityStyle(band.Severity).Render(band.Description))
		}
		return nil
	},
}

var bpListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent blood pressure readings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		readings := repo.Snapshot().BloodPressures
		if len(readings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No blood pressure readings found.")
			return nil
		}
		for _, bp := range newestFirst(readings, readingLimit, func(bp models.BloodPressure) time.Time { return bp.Timestamp }) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %3.0f/%-3.0f mmHg  %s%s\n",
				faint.Sprint(dates.FormatDateTimeForDisplay(bp.Timestamp)),
				bp.Systolic, bp.Diastolic,
				ui.BandBadge(classify.BloodPressure(bp.Systolic, bp.Diastolic)),
				noteSuffix(bp.Note))
		}
		return nil
	},
}

var bpStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Blood pressure statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		readings := repo.Snapshot().BloodPressures
		sys := stats.SystolicPoints(readings)
		dia := stats.DiastolicPoints(readings)

		printSummary(out, "Systolic", "mmHg", sys, "%.0f")
		if len(readings) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		printSummary(out, "Diastolic", "mmHg", dia, "%.0f")
		fmt.Fprintln(out)

		avgSys, avgDia := stats.RecentAverage(sys, 5), stats.RecentAverage(dia, 5)
		band := classify.BloodPressure(avgSys, avgDia)
		fmt.Fprintln(out, ui.LabelValue("Recent average", fmt.Sprintf("%.0f/%.0f mmHg %s", avgSys, avgDia, ui.BandBadge(band))))
		return nil
	},
}

var hrCmd = &cobra.Command{
	Use:     "hr",
	Aliases: []string{"heart-rate"},
	Short:   "Track heart rate in bpm",
}

var hrAddCmd = &cobra.Command{
	Use:   "add <bpm>",
	Short: "Add a heart rate reading",
	Long: `Add a heart rate reading in beats per minute (30 to 250).

Examples:
  healthtrack hr add 64
  healthtrack hr add 132 --note "stairs"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseAt(readingAt)
		if err != nil {
			return err
		}
		hr, err := repo.RecordHeartRate(cmd.Context(), args[0], readingNote, at)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Added heart rate")
		fmt.Fprintf(out, "  %s %d bpm  %s\n", faint.Sprint(hr.Date), hr.BPM, ui.BandBadge(classify.HeartRate(hr.BPM)))
		return nil
	},
}

var hrListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent heart rate readings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		readings := repo.Snapshot().HeartRates
		if len(readings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No heart rate readings found.")
			return nil
		}
		for _, hr := range newestFirst(readings, readingLimit, func(hr models.HeartRate) time.Time { return hr.Timestamp }) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d bpm  %s%s\n",
				faint.Sprint(dates.FormatDateTimeForDisplay(hr.Timestamp)),
				hr.BPM, ui.BandBadge(classify.HeartRate(hr.BPM)), noteSuffix(hr.Note))
		}
		return nil
	},
}

var hrStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Heart rate statistics and chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		points := stats.HeartRatePoints(repo.Snapshot().HeartRates)
		printSummary(cmd.OutOrStdout(), "Heart rate", "bpm", points, "%.0f")
		return nil
	},
}

// printSummary writes count, average, range, latest and trend, then a chart
// of the last ten readings.
func printSummary(out io.Writer, title, unit string, points []stats.Point, valueFormat string) {
	fmt.Fprintln(out, ui.Heading(title))
	s := stats.Summarize(points)
	if s.Count == 0 {
		fmt.Fprintln(out, "No readings yet.")
		return
	}
	f := func(v float64) string { return fmt.Sprintf(valueFormat, v) }

	fmt.Fprintln(out, ui.LabelValue("Readings", s.Count))
	fmt.Fprintln(out, ui.LabelValue("Average", f(s.Average)+" "+unit))
	fmt.Fprintln(out, ui.LabelValue("Range", fmt.Sprintf("%s to %s %s", f(s.Min), f(s.Max), unit)))
	fmt.Fprintln(out, ui.LabelValue("Latest", fmt.Sprintf("%s %s %s", f(s.Latest), unit, ui.TrendArrow(stats.Trend(points)))))
	r := stats.ValueRange(points, 10)
	fmt.Fprintln(out, ui.LabelValue("Chart", fmt.Sprintf("%s to %s %s", f(r.Min), f(r.Max), unit)))
	fmt.Fprintln(out, ui.BarChart(stats.ChartSeries(points, 10, stats.DefaultScale), 30, f))
}

// newestFirst returns up to n records, most recent first. Equal timestamps
// keep the later-added record first.
func newestFirst[T any](records []T, n int, ts func(T) time.Time) []T {
	out := slices.Clone(records)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int { return ts(b).Compare(ts(a)) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func noteSuffix(note *string) string {
	if note == nil || *note == "" {
		return ""
	}
	return faint.Sprintf("  (%s)", truncate(*note, 30))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	for _, c := range []*cobra.Command{weightAddCmd, bpAddCmd, hrAddCmd} {
		c.Flags().StringVar(&readingAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
		c.Flags().StringVar(&readingNote, "note", "", "optional note")
	}
	for _, c := range []*cobra.Command{weightListCmd, bpListCmd, hrListCmd} {
		c.Flags().IntVarP(&readingLimit, "limit", "n", 20, "max number of results")
	}

	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightStatsCmd)
	bpCmd.AddCommand(bpAddCmd, bpListCmd, bpStatsCmd)
	hrCmd.AddCommand(hrAddCmd, hrListCmd, hrStatsCmd)
	rootCmd.AddCommand(weightCmd, bpCmd, hrCmd)
}
