// ABOUTME: MCP tool implementations for logging readings and managing habits.
// ABOUTME: Inputs go through the same validation as the CLI.
package mcp

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/harperreed/healthtrack/internal/classify"
	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/repository"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_water",
		Description: "Record water intake in millilitres",
	}, s.handleLogWater)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_steps",
		Description: "Record a step count",
	}, s.handleLogSteps)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record body weight in kilograms",
	}, s.handleLogWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_blood_pressure",
		Description: "Record a blood pressure reading and classify it",
	}, s.handleLogBloodPressure)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_heart_rate",
		Description: "Record a heart rate in bpm and classify it",
	}, s.handleLogHeartRate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a habit scheduled on some weekdays",
	}, s.handleAddHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_habit",
		Description: "Mark a habit done for a date, or undo it if already done",
	}, s.handleToggleHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit by ID, name, or ID prefix",
	}, s.handleDeleteHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List recent records of one category, newest first",
	}, s.handleListRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Summary statistics, trend and daily totals for a category",
	}, s.handleGetStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify_reading",
		Description: "Classify a blood pressure or heart rate reading without storing it",
	}, s.handleClassifyReading)
}

// Tool input/output types

type logValueInput struct {
	Value      float64 `json:"value" jsonschema:"The reading value"`
	Note       string  `json:"note,omitempty" jsonschema:"Optional note (weight and heart rate only)"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601 or YYYY-MM-DD HH:MM), defaults to now"`
}

type logBloodPressureInput struct {
	Systolic   float64 `json:"systolic" jsonschema:"Systolic pressure in mmHg"`
	Diastolic  float64 `json:"diastolic" jsonschema:"Diastolic pressure in mmHg"`
	Note       string  `json:"note,omitempty" jsonschema:"Optional note"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601 or YYYY-MM-DD HH:MM), defaults to now"`
}

type recordOutput struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Band     string `json:"band,omitempty"`
	Message  string `json:"message"`
}

type addHabitInput struct {
	Name        string   `json:"name" jsonschema:"Habit name (max 50 characters)"`
	Days        []string `json:"days,omitempty" jsonschema:"Weekdays (Sun Mon Tue Wed Thu Fri Sat); empty means every day"`
	Description string   `json:"description,omitempty" jsonschema:"Optional description"`
	Color       string   `json:"color,omitempty" jsonschema:"Optional display color"`
}

type habitRefInput struct {
	Habit string `json:"habit" jsonschema:"Habit ID, name, or ID prefix"`
	Date  string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type habitOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DoneToday bool   `json:"done_today"`
	Streak    int    `json:"streak"`
	Message   string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listRecordsInput struct {
	Category string `json:"category" jsonschema:"water, steps, weight, blood-pressure, heart-rate or habit"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	Since    string `json:"since,omitempty" jsonschema:"Only records on or after this date (YYYY-MM-DD)"`
}

type getStatsInput struct {
	Category string `json:"category" jsonschema:"water, steps, weight, blood-pressure or heart-rate"`
	Days     int    `json:"days,omitempty" jsonschema:"Window in days for daily totals (default 7)"`
}

type classifyInput struct {
	Kind      string  `json:"kind" jsonschema:"blood-pressure or heart-rate"`
	Systolic  float64 `json:"systolic,omitempty" jsonschema:"Systolic pressure (blood-pressure)"`
	Diastolic float64 `json:"diastolic,omitempty" jsonschema:"Diastolic pressure (blood-pressure)"`
	BPM       float64 `json:"bpm,omitempty" jsonschema:"Beats per minute (heart-rate)"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseRecordedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dates.ParseTimestamp(s)
}

// Tool handlers

func (s *Server) handleLogWater(ctx context.Context, req *mcp.CallToolRequest, input logValueInput) (*mcp.CallToolResult, recordOutput, error) {
	at, err := parseRecordedAt(input.RecordedAt)
	if err != nil {
		return nil, recordOutput{}, err
	}
	w, err := s.repo.RecordWater(ctx, formatNumber(input.Value), at)
	if err != nil {
		return nil, recordOutput{}, err
	}
	total := stats.DailyTotal(stats.WaterPoints(s.repo.Snapshot().WaterIntake), w.Date)
	return nil, recordOutput{
		ID:       w.ID,
		Category: string(models.CategoryWater),
		Date:     w.Date,
		Message:  fmt.Sprintf("Added %.0f ml of water (%.0f / %.0f ml on %s)", w.Amount, total, s.goals.WaterML, w.Date),
	}, nil
}

func (s *Server) handleLogSteps(ctx context.Context, req *mcp.CallToolRequest, input logValueInput) (*mcp.CallToolResult, recordOutput, error) {
	at, err := parseRecordedAt(input.RecordedAt)
	if err != nil {
		return nil, recordOutput{}, err
	}
	st, err := s.repo.RecordSteps(ctx, formatNumber(input.Value), at)
	if err != nil {
		return nil, recordOutput{}, err
	}
	return nil, recordOutput{
		ID:       st.ID,
		Category: string(models.CategorySteps),
		Date:     st.Date,
		Message:  fmt.Sprintf("Added %d steps on %s", st.Count, st.Date),
	}, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logValueInput) (*mcp.CallToolResult, recordOutput, error) {
	at, err := parseRecordedAt(input.RecordedAt)
	if err != nil {
		return nil, recordOutput{}, err
	}
	w, err := s.repo.RecordWeight(ctx, formatNumber(input.Value), input.Note, at)
	if err != nil {
		return nil, recordOutput{}, err
	}
	return nil, recordOutput{
		ID:       w.ID,
		Category: string(models.CategoryWeight),
		Date:     w.Date,
		Message:  fmt.Sprintf("Added weight: %.1f kg", w.Value),
	}, nil
}

func (s *Server) handleLogBloodPressure(ctx context.Context, req *mcp.CallToolRequest, input logBloodPressureInput) (*mcp.CallToolResult, recordOutput, error) {
	at, err := parseRecordedAt(input.RecordedAt)
	if err != nil {
		return nil, recordOutput{}, err
	}
	bp, err := s.repo.RecordBloodPressure(ctx, formatNumber(input.Systolic), formatNumber(input.Diastolic), input.Note, at)
	if err != nil {
		return nil, recordOutput{}, err
	}
	band := classify.BloodPressure(bp.Systolic, bp.Diastolic)
	return nil, recordOutput{
		ID:       bp.ID,
		Category: string(models.CategoryBloodPressure),
		Date:     bp.Date,
		Band:     band.Name,
		Message:  fmt.Sprintf("Added blood pressure: %.0f/%.0f mmHg (%s: %s)", bp.Systolic, bp.Diastolic, band.Name, band.Description),
	}, nil
}

func (s *Server) handleLogHeartRate(ctx context.Context, req *mcp.CallToolRequest, input logValueInput) (*mcp.CallToolResult, recordOutput, error) {
	at, err := parseRecordedAt(input.RecordedAt)
	if err != nil {
		return nil, recordOutput{}, err
	}
	hr, err := s.repo.RecordHeartRate(ctx, formatNumber(input.Value), input.Note, at)
	if err != nil {
		return nil, recordOutput{}, err
	}
	band := classify.HeartRate(hr.BPM)
	return nil, recordOutput{
		ID:       hr.ID,
		Category: string(models.CategoryHeartRate),
		Date:     hr.Date,
		Band:     band.Name,
		Message:  fmt.Sprintf("Added heart rate: %d bpm (%s)", hr.BPM, band.Name),
	}, nil
}

func (s *Server) habitOutput(h models.Habit, message string) habitOutput {
	today := s.repo.Now()
	return habitOutput{
		ID:        h.ID,
		Name:      h.Name,
		DoneToday: h.IsCompletedOn(dates.FormatDate(today)),
		Streak:    stats.Streak(h, today),
		Message:   message,
	}
}

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.repo.AddHabit(ctx, input.Name, input.Days, input.Description, input.Color)
	if err != nil {
		return nil, habitOutput{}, err
	}
	return nil, s.habitOutput(h, fmt.Sprintf("Added habit %q", h.Name)), nil
}

func (s *Server) handleToggleHabit(ctx context.Context, req *mcp.CallToolRequest, input habitRefInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.repo.ResolveHabit(input.Habit)
	if err != nil {
		return nil, habitOutput{}, err
	}
	date := input.Date
	if date == "" {
		date = dates.FormatDate(s.repo.Now())
	}
	h, err = s.repo.ToggleHabitCompletion(ctx, h.ID, date)
	if err != nil {
		return nil, habitOutput{}, err
	}

	verb := "Marked"
	if !h.IsCompletedOn(date) {
		verb = "Unmarked"
	}
	return nil, s.habitOutput(h, fmt.Sprintf("%s %q done on %s", verb, h.Name, date)), nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input habitRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	h, err := s.repo.ResolveHabit(input.Habit)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.repo.DeleteHabit(ctx, h.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted habit: %s", h.Name)}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, any, error) {
	c, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	ds := s.repo.Snapshot()
	var records any
	switch c {
	case models.CategoryWater:
		records = newestRecords(ds.WaterIntake, input, func(r models.WaterIntake) (string, time.Time) { return r.Date, r.Timestamp })
	case models.CategorySteps:
		records = newestRecords(ds.StepCounts, input, func(r models.StepCount) (string, time.Time) { return r.Date, r.Timestamp })
	case models.CategoryWeight:
		records = newestRecords(ds.Weights, input, func(r models.Weight) (string, time.Time) { return r.Date, r.Timestamp })
	case models.CategoryBloodPressure:
		records = newestRecords(ds.BloodPressures, input, func(r models.BloodPressure) (string, time.Time) { return r.Date, r.Timestamp })
	case models.CategoryHeartRate:
		records = newestRecords(ds.HeartRates, input, func(r models.HeartRate) (string, time.Time) { return r.Date, r.Timestamp })
	case models.CategoryHabit:
		records = ds.Habits
	}

	return nil, map[string]any{
		"category": string(c),
		"records":  records,
	}, nil
}

// newestRecords filters by since, sorts newest first and truncates to the limit.
func newestRecords[T any](records []T, input listRecordsInput, key func(T) (string, time.Time)) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if d, _ := key(r); input.Since != "" && d < input.Since {
			continue
		}
		out = append(out, r)
	}
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int {
		_, ta := key(a)
		_, tb := key(b)
		return tb.Compare(ta)
	})
	if len(out) > input.Limit {
		out = out[:input.Limit]
	}
	return out
}

type statsOutput struct {
	Category      string           `json:"category"`
	Unit          string           `json:"unit"`
	Summary       stats.Summary    `json:"summary"`
	Trend         stats.Direction  `json:"trend"`
	Daily         []stats.DayTotal `json:"daily,omitempty"`
	Goal          *stats.Progress  `json:"goal,omitempty"`
	Diastolic     *stats.Summary   `json:"diastolic,omitempty"`
	RecentAverage string           `json:"recent_average,omitempty"`
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input getStatsInput) (*mcp.CallToolResult, statsOutput, error) {
	c, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, statsOutput{}, err
	}
	if c == models.CategoryHabit {
		return nil, statsOutput{}, fmt.Errorf("use the health://habits resource for habit statistics")
	}
	if input.Days <= 0 {
		input.Days = 7
	}
	return nil, categoryStats(s.repo.Snapshot(), c, s.repo.Now(), input.Days, s.goals), nil
}

// categoryStats computes the payload shared by get_stats and health://summary.
func categoryStats(ds *models.HealthDataset, c models.Category, today time.Time, days int, goals repository.Goals) statsOutput {
	out := statsOutput{Category: string(c), Unit: models.CategoryUnits[c]}
	window := dates.DateRange(days, today)
	day := dates.FormatDate(today)

	var points []stats.Point
	switch c {
	case models.CategoryWater:
		points = stats.WaterPoints(ds.WaterIntake)
		out.Daily = stats.DailyTotals(points, window)
		p := stats.GoalProgress(stats.DailyTotal(points, day), goals.WaterML)
		out.Goal = &p
	case models.CategorySteps:
		points = stats.StepPoints(ds.StepCounts)
		out.Daily = stats.DailyTotals(points, window)
		p := stats.GoalProgress(stats.DailyTotal(points, day), goals.Steps)
		out.Goal = &p
	case models.CategoryWeight:
		points = stats.WeightPoints(ds.Weights)
	case models.CategoryBloodPressure:
		points = stats.SystolicPoints(ds.BloodPressures)
		dia := stats.DiastolicPoints(ds.BloodPressures)
		diaSummary := stats.Summarize(dia)
		out.Diastolic = &diaSummary
		if len(points) > 0 {
			out.RecentAverage = fmt.Sprintf("%.0f/%.0f", stats.RecentAverage(points, 5), stats.RecentAverage(dia, 5))
		}
	case models.CategoryHeartRate:
		points = stats.HeartRatePoints(ds.HeartRates)
	}

	out.Summary = stats.Summarize(points)
	out.Trend = stats.Trend(points)
	return out
}

type classifyOutput struct {
	Band        string `json:"band"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

func (s *Server) handleClassifyReading(ctx context.Context, req *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classifyOutput, error) {
	var (
		band classify.Band
		err  error
	)
	switch classify.Kind(input.Kind) {
	case classify.KindBloodPressure:
		band, err = classify.Reading(classify.KindBloodPressure, input.Systolic, input.Diastolic)
	case classify.KindHeartRate:
		band, err = classify.Reading(classify.KindHeartRate, input.BPM)
	default:
		err = fmt.Errorf("unknown reading kind: %s (use blood-pressure or heart-rate)", input.Kind)
	}
	if err != nil {
		return nil, classifyOutput{}, err
	}
	return nil, classifyOutput{
		Band:        band.Name,
		Severity:    band.Severity.String(),
		Description: band.Description,
	}, nil
}
