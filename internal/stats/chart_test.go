// ABOUTME: Tests for chart series scaling and goal progress.
// ABOUTME: Checks ordering, proportionality, floors, and goal capping.
package stats

import (
	"math"
	"testing"
)

func TestChartSeriesOrderAndProportion(t *testing.T) {
	points := []Point{
		pt("2025-06-16", 2, 100),
		pt("2025-06-14", 0, 50),
		pt("2025-06-15", 1, 25),
		pt("2025-06-13", -24, 999), // dropped by n
	}

	bars := ChartSeries(points, 3, DefaultScale)
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	wantDates := []string{"2025-06-14", "2025-06-15", "2025-06-16"}
	for i, d := range wantDates {
		if bars[i].Date != d {
			t.Errorf("bars[%d].Date = %s, want %s", i, bars[i].Date, d)
		}
	}

	// Max (100) sits below the top because of 10% headroom.
	if bars[2].Percent >= 100 {
		t.Errorf("max bar = %v, want < 100", bars[2].Percent)
	}
	// Heights above the floor are proportional to values.
	above := func(b Bar) float64 { return b.Percent - DefaultScale.Floor }
	if math.Abs(above(bars[0])/above(bars[2])-0.5) > 1e-9 {
		t.Errorf("bar proportion = %v, want 0.5", above(bars[0])/above(bars[2]))
	}
	if !(bars[1].Percent < bars[0].Percent && bars[0].Percent < bars[2].Percent) {
		t.Errorf("relative ordering not preserved: %+v", bars)
	}
}

func TestChartSeriesZeroValues(t *testing.T) {
	bars := ChartSeries([]Point{pt("2025-06-16", 0, 0)}, 10, DefaultScale)
	if len(bars) != 1 || bars[0].Percent != 0 {
		t.Errorf("bars = %+v, want single zero bar", bars)
	}
	if got := ChartSeries(nil, 10, DefaultScale); len(got) != 0 {
		t.Errorf("ChartSeries(nil) = %+v", got)
	}
}

func TestDailySeries(t *testing.T) {
	bars := DailySeries([]DayTotal{{"a", 0}, {"b", 5000}, {"c", 10000}}, Scale{Headroom: 0, Floor: 0})
	if bars[0].Percent != 0 || bars[1].Percent != 50 || bars[2].Percent != 100 {
		t.Errorf("DailySeries = %+v", bars)
	}
}

func TestValueRange(t *testing.T) {
	r := ValueRange([]Point{pt("d", 0, 55), pt("d", 1, 120)}, 10)
	if r.Min != 45 || r.Max != 130 {
		t.Errorf("ValueRange = %+v, want 45..130", r)
	}
	r = ValueRange([]Point{pt("d", 0, 5)}, 10)
	if r.Min != 0 {
		t.Errorf("ValueRange min = %v, want floored at 0", r.Min)
	}
	if r := ValueRange(nil, 10); r.Min != 0 || r.Max != 100 {
		t.Errorf("ValueRange(nil) = %+v", r)
	}
}

func TestGoalProgress(t *testing.T) {
	p := GoalProgress(1500, DefaultWaterGoalML)
	if p.Ratio != 0.75 || p.Remaining != 500 || p.Reached {
		t.Errorf("GoalProgress(1500) = %+v", p)
	}

	p = GoalProgress(12000, DefaultStepGoal)
	if p.Ratio != 1 || p.Remaining != 0 || !p.Reached {
		t.Errorf("GoalProgress(12000) = %+v", p)
	}

	p = GoalProgress(10, 0)
	if !p.Reached {
		t.Errorf("zero goal should count as reached: %+v", p)
	}
}
