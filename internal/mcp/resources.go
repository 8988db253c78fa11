// ABOUTME: MCP resource implementations for read-only health views.
// ABOUTME: Exposes today's dashboard, per-category summaries and habit reports.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/repository"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "health://today",
		Name:        "Today",
		Description: "Today's water and step progress, latest readings and habits",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "health://summary",
		Name:        "Summary",
		Description: "Statistics and trend for every reading category",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "health://habits",
		Name:        "Habits",
		Description: "Habits with completion rate, streak and today's status",
		MIMEType:    "application/json",
	}, s.handleHabitsResource)
}

type bandView struct {
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type habitView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Frequency      []string `json:"frequency"`
	CompletionRate string   `json:"completion_rate"`
	Streak         int      `json:"streak"`
	DueToday       bool     `json:"due_today"`
	DoneToday      bool     `json:"done_today"`
}

func habitViews(reports []stats.HabitReport) []habitView {
	out := make([]habitView, 0, len(reports))
	for _, r := range reports {
		out = append(out, habitView{
			ID:             r.Habit.ID,
			Name:           r.Habit.Name,
			Frequency:      r.Habit.Frequency,
			CompletionRate: stats.FormatRate(r.CompletionRate),
			Streak:         r.Streak,
			DueToday:       r.DueToday,
			DoneToday:      r.DoneToday,
		})
	}
	return out
}

func jsonContents(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d := s.repo.Dashboard(s.goals)

	view := map[string]any{
		"date":   d.Date,
		"water":  d.Water,
		"steps":  d.Steps,
		"habits": habitViews(d.Habits),
		"alert":  bandView{Name: d.Alert.Name, Severity: d.Alert.Severity.String(), Description: d.Alert.Description},
	}
	if d.LatestWeight != nil {
		view["weight"] = map[string]any{"latest": d.LatestWeight, "trend": d.WeightTrend}
	}
	if d.LatestBloodPressure != nil {
		view["blood_pressure"] = map[string]any{
			"latest":  d.LatestBloodPressure,
			"band":    d.BloodPressureBand.Name,
			"average": fmt.Sprintf("%.0f/%.0f", d.AvgSystolic, d.AvgDiastolic),
		}
	}
	if d.LatestHeartRate != nil {
		view["heart_rate"] = map[string]any{"latest": d.LatestHeartRate, "band": d.HeartRateBand.Name}
	}
	return jsonContents("health://today", view)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ds := s.repo.Snapshot()
	today := s.repo.Now()

	summary := make(map[string]statsOutput)
	for _, c := range models.AllCategories {
		if c == models.CategoryHabit {
			continue
		}
		summary[string(c)] = categoryStats(ds, c, today, 7, s.goals)
	}
	return jsonContents("health://summary", summary)
}

func (s *Server) handleHabitsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ds := s.repo.Snapshot()
	today := s.repo.Now()
	reports := stats.ReportHabits(ds.Habits, dates.DateRange(repository.HabitWindowDays, today), today)
	return jsonContents("health://habits", habitViews(reports))
}
