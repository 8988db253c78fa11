// ABOUTME: Chart series construction and daily goal progress.
// ABOUTME: Bars are scaled to a padded range so ordering and proportions are preserved.
package stats

import "math"

// Default daily goals.
const (
	DefaultWaterGoalML = 2000
	DefaultStepGoal    = 10000
)

// Scale controls how chart values map to bar heights.
type Scale struct {
	// Headroom is added above the maximum as a fraction of it.
	Headroom float64
	// Floor is the minimum bar height in percent, so small values stay visible.
	Floor float64
}

// DefaultScale leaves 10% headroom and a 20% visual floor.
var DefaultScale = Scale{Headroom: 0.10, Floor: 20}

// Bar is one chart column.
type Bar struct {
	Date    string
	Value   float64
	Percent float64
}

// ChartSeries returns the last n points, oldest first, with each bar's
// height as a percentage of the padded range.
func ChartSeries(points []Point, n int, scale Scale) []Bar {
	recent := LastN(points, n)
	bars := make([]Bar, len(recent))
	top := 0.0
	for _, p := range recent {
		top = math.Max(top, p.Value)
	}
	top *= 1 + scale.Headroom

	for i, p := range recent {
		pct := 0.0
		if top > 0 && p.Value > 0 {
			pct = scale.Floor + (p.Value/top)*(100-scale.Floor)
		}
		bars[len(recent)-1-i] = Bar{Date: p.Date, Value: p.Value, Percent: pct}
	}
	return bars
}

// DailySeries builds bars from per-day totals, in the order given.
func DailySeries(totals []DayTotal, scale Scale) []Bar {
	top := 0.0
	for _, t := range totals {
		top = math.Max(top, t.Total)
	}
	top *= 1 + scale.Headroom

	bars := make([]Bar, 0, len(totals))
	for _, t := range totals {
		pct := 0.0
		if top > 0 && t.Total > 0 {
			pct = scale.Floor + (t.Total/top)*(100-scale.Floor)
		}
		bars = append(bars, Bar{Date: t.Date, Value: t.Total, Percent: pct})
	}
	return bars
}

// Range is a padded min/max window for plotting readings.
type Range struct {
	Min float64
	Max float64
}

// ValueRange returns the min and max of points widened by pad, with the
// lower bound floored at zero. Empty input yields 0..100.
func ValueRange(points []Point, pad float64) Range {
	if len(points) == 0 {
		return Range{Min: 0, Max: 100}
	}
	s := Summarize(points)
	return Range{Min: math.Max(0, s.Min-pad), Max: s.Max + pad}
}

// Progress describes how far a daily total is toward a goal.
type Progress struct {
	Current   float64
	Goal      float64
	Ratio     float64
	Remaining float64
	Reached   bool
}

// GoalProgress computes progress toward goal. Ratio is capped at 1.
func GoalProgress(current, goal float64) Progress {
	p := Progress{Current: current, Goal: goal}
	if goal <= 0 {
		p.Reached = true
		p.Ratio = 1
		return p
	}
	p.Ratio = math.Min(current/goal, 1)
	p.Remaining = math.Max(goal-current, 0)
	p.Reached = current >= goal
	return p
}
