// ABOUTME: Aggregation over date-partitioned records: summaries, daily totals, trends.
// ABOUTME: Functions never mutate their input and treat empty input as zero values.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/harperreed/healthtrack/internal/models"
)

// Point is one numeric reading taken from a record.
type Point struct {
	Date      string
	Timestamp time.Time
	Value     float64
}

// Summary holds the basic statistics of a series.
type Summary struct {
	Count   int
	Average float64
	Min     float64
	Max     float64
	Latest  float64
}

// Direction is the movement between the two most recent readings.
type Direction string

const (
	Up      Direction = "up"
	Down    Direction = "down"
	Neutral Direction = "neutral"
)

// DayTotal is the sum of a series for one calendar date.
type DayTotal struct {
	Date  string
	Total float64
}

// Summarize computes count, average, min, max and latest over points.
// Latest is the value with the greatest timestamp; on ties the later point
// in input order wins.
func Summarize(points []Point) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(points),
		Min:   points[0].Value,
		Max:   points[0].Value,
	}
	sum := 0.0
	latest := points[0]
	for _, p := range points {
		sum += p.Value
		if p.Value < s.Min {
			s.Min = p.Value
		}
		if p.Value > s.Max {
			s.Max = p.Value
		}
		if !p.Timestamp.Before(latest.Timestamp) {
			latest = p
		}
	}
	s.Average = sum / float64(len(points))
	s.Latest = latest.Value
	return s
}

// DailyTotal sums every point recorded on date.
func DailyTotal(points []Point, date string) float64 {
	total := 0.0
	for _, p := range points {
		if p.Date == date {
			total += p.Value
		}
	}
	return total
}

// DailyTotals sums points per date, in the order of dates.
func DailyTotals(points []Point, dates []string) []DayTotal {
	byDate := make(map[string]float64, len(dates))
	for _, p := range points {
		byDate[p.Date] += p.Value
	}
	out := make([]DayTotal, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayTotal{Date: d, Total: byDate[d]})
	}
	return out
}

// Between returns the points whose date lies in [from, to], inclusive.
// An empty bound is open.
func Between(points []Point, from, to string) []Point {
	var out []Point
	for _, p := range points {
		if from != "" && p.Date < from {
			continue
		}
		if to != "" && p.Date > to {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Newest returns a copy of points sorted most recent first. Points sharing a
// timestamp keep reverse input order, matching Summarize's latest rule.
func Newest(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// LastN returns the n most recent points, most recent first.
func LastN(points []Point, n int) []Point {
	sorted := Newest(points)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Trend compares the two most recent points by timestamp.
func Trend(points []Point) Direction {
	if len(points) < 2 {
		return Neutral
	}
	recent := LastN(points, 2)
	switch {
	case recent[0].Value > recent[1].Value:
		return Up
	case recent[0].Value < recent[1].Value:
		return Down
	default:
		return Neutral
	}
}

// RecentAverage returns the rounded mean of the n most recent points.
func RecentAverage(points []Point, n int) float64 {
	recent := LastN(points, n)
	if len(recent) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range recent {
		sum += p.Value
	}
	return math.Round(sum / float64(len(recent)))
}

// WaterPoints projects water entries onto their amount.
func WaterPoints(records []models.WaterIntake) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Date: r.Date, Timestamp: r.Timestamp, Value: r.Amount})
	}
	return out
}

// StepPoints projects step entries onto their count.
func StepPoints(records []models.StepCount) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Date: r.Date, Timestamp: r.Timestamp, Value: float64(r.Count)})
	}
	return out
}

// WeightPoints projects weight entries onto their value.
func WeightPoints(records []models.Weight) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Date: r.Date, Timestamp: r.Timestamp, Value: r.Value})
	}
	return out
}

// SystolicPoints projects blood pressure entries onto systolic pressure.
func SystolicPoints(records []models.BloodPressure) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Date: r.Date, Timestamp: r.Timestamp, Value: r.Systolic})
	}
	return out
}

// DiastolicPoints projects blood pressure entries onto diastolic pressure.
func DiastolicPoints(records []models.BloodPressure) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Date: r.Date, Timestamp: r.Timestamp, Value: r.Diastolic})
	}
	return out
}

// HeartRatePoints projects heart rate entries onto bpm.
func HeartRatePoints(records []models.HeartRate) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Date: r.Date, Timestamp: r.Timestamp, Value: float64(r.BPM)})
	}
	return out
}
