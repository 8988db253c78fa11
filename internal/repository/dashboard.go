// ABOUTME: Daily dashboard assembled from a dataset snapshot.
// ABOUTME: Combines totals, goal progress, latest readings, bands and habit reports.
package repository

import (
	"time"

	"github.com/harperreed/healthtrack/internal/classify"
	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/stats"
)

// Goals holds the daily targets used by the dashboard.
type Goals struct {
	WaterML float64
	Steps   float64
}

// DefaultGoals are used when no goals are configured.
var DefaultGoals = Goals{WaterML: stats.DefaultWaterGoalML, Steps: stats.DefaultStepGoal}

// HabitWindowDays is how far back completion rates look.
const HabitWindowDays = 7

// Dashboard is the state of one day.
type Dashboard struct {
	Date  string
	Water stats.Progress
	Steps stats.Progress

	LatestWeight *models.Weight
	WeightTrend  stats.Direction

	LatestBloodPressure *models.BloodPressure
	BloodPressureBand   *classify.Band
	AvgSystolic         float64
	AvgDiastolic        float64

	LatestHeartRate *models.HeartRate
	HeartRateBand   *classify.Band

	Habits []stats.HabitReport

	// Alert is the most severe band among the latest readings.
	Alert classify.Band
}

// BuildDashboard computes the dashboard for today from ds.
func BuildDashboard(ds *models.HealthDataset, today time.Time, goals Goals) Dashboard {
	day := dates.FormatDate(today)
	d := Dashboard{
		Date:        day,
		Water:       stats.GoalProgress(stats.DailyTotal(stats.WaterPoints(ds.WaterIntake), day), goals.WaterML),
		Steps:       stats.GoalProgress(stats.DailyTotal(stats.StepPoints(ds.StepCounts), day), goals.Steps),
		WeightTrend: stats.Trend(stats.WeightPoints(ds.Weights)),
		Habits:      stats.ReportHabits(ds.Habits, dates.DateRange(HabitWindowDays, today), today),
		Alert:       classify.BPUnknown,
	}

	var bands []classify.Band
	if w, ok := latest(ds.Weights, func(v models.Weight) time.Time { return v.Timestamp }); ok {
		d.LatestWeight = &w
	}
	if bp, ok := latest(ds.BloodPressures, func(v models.BloodPressure) time.Time { return v.Timestamp }); ok {
		d.LatestBloodPressure = &bp
		band := classify.BloodPressure(bp.Systolic, bp.Diastolic)
		d.BloodPressureBand = &band
		bands = append(bands, band)
		d.AvgSystolic = stats.RecentAverage(stats.SystolicPoints(ds.BloodPressures), 5)
		d.AvgDiastolic = stats.RecentAverage(stats.DiastolicPoints(ds.BloodPressures), 5)
	}
	if hr, ok := latest(ds.HeartRates, func(v models.HeartRate) time.Time { return v.Timestamp }); ok {
		d.LatestHeartRate = &hr
		band := classify.HeartRate(hr.BPM)
		d.HeartRateBand = &band
		bands = append(bands, band)
	}
	if len(bands) > 0 {
		d.Alert = classify.MostSevere(bands...)
	}
	return d
}

// Dashboard builds today's dashboard from the current dataset.
func (r *Repository) Dashboard(goals Goals) Dashboard {
	return BuildDashboard(r.Snapshot(), r.clock(), goals)
}

// latest returns the record with the greatest timestamp; the later one in
// slice order wins ties.
func latest[T any](records []T, ts func(T) time.Time) (T, bool) {
	var best T
	if len(records) == 0 {
		return best, false
	}
	best = records[0]
	for _, v := range records[1:] {
		if !ts(v).Before(ts(best)) {
			best = v
		}
	}
	return best, true
}
