// ABOUTME: CLI command showing today's dashboard.
// ABOUTME: Goal progress, latest readings with bands, and habits due today.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/healthtrack/internal/classify"
	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/repository"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/harperreed/healthtrack/internal/ui"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"today", "dashboard"},
	Short:   "Show today's dashboard",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(repo.Dashboard(goals())))
		return nil
	},
}

func renderDashboard(d repository.Dashboard) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line("%s", ui.Heading("Today, "+dates.FormatForDisplay(d.Date)))
	line("%s %s  %.0f / %.0f ml", padLabel("Water"), ui.ProgressBar(d.Water, 20), d.Water.Current, d.Water.Goal)
	line("%s %s  %.0f / %.0f", padLabel("Steps"), ui.ProgressBar(d.Steps, 20), d.Steps.Current, d.Steps.Goal)
	line("")

	if d.LatestWeight != nil {
		line("%s %.1f kg %s  %s", padLabel("Weight"), d.LatestWeight.Value, ui.TrendArrow(d.WeightTrend),
			faint.Sprint(d.LatestWeight.Date))
	} else {
		line("%s %s", padLabel("Weight"), faint.Sprint("no readings"))
	}
	if d.LatestBloodPressure != nil {
		line("%s %.0f/%.0f mmHg %s  %s", padLabel("Blood pressure"),
			d.LatestBloodPressure.Systolic, d.LatestBloodPressure.Diastolic,
			ui.BandBadge(*d.BloodPressureBand), faint.Sprintf("avg %.0f/%.0f", d.AvgSystolic, d.AvgDiastolic))
	} else {
		line("%s %s", padLabel("Blood pressure"), faint.Sprint("no readings"))
	}
	if d.LatestHeartRate != nil {
		line("%s %d bpm %s", padLabel("Heart rate"), d.LatestHeartRate.BPM, ui.BandBadge(*d.HeartRateBand))
	} else {
		line("%s %s", padLabel("Heart rate"), faint.Sprint("no readings"))
	}

	if d.Alert.Severity >= classify.SeverityHigh {
		var alerts []classify.Band
		for _, b := range []*classify.Band{d.BloodPressureBand, d.HeartRateBand} {
			if b != nil && b.Severity >= classify.SeverityHigh {
				alerts = append(alerts, *b)
			}
		}
		classify.SortBySeverity(alerts)
		msgs := make([]string, 0, len(alerts))
		for _, b := range alerts {
			msgs = append(msgs, ui.SeverityStyle(b.Severity).Render(b.Name)+": "+b.Description)
		}
		line("")
		line("%s", ui.Panel.Render(strings.Join(msgs, "\n")))
	}

	if len(d.Habits) > 0 {
		line("")
		line("%s", ui.Heading("Habits"))
		for _, r := range d.Habits {
			if !r.DueToday && !r.DoneToday {
				continue
			}
			mark := ui.Muted.Render("○")
			if r.DoneToday {
				mark = ui.Good.Render("●")
			}
			line("%s %s  %s", mark, r.Habit.Name,
				faint.Sprintf("streak %d, %s over 7 days", r.Streak, stats.FormatRate(r.CompletionRate)))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func padLabel(s string) string {
	return fmt.Sprintf("%-15s", s)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
