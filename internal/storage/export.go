// ABOUTME: Export and import functionality for health data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/healthtrack/internal/classify"
	"github.com/harperreed/healthtrack/internal/dates"
	"github.com/harperreed/healthtrack/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export envelope.
const ExportVersion = "1.0"

// ExportData is the full export format. The dataset fields sit at the top
// level, so an export can also be read back as a plain dataset.
type ExportData struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Tool       string    `json:"tool"`
	models.HealthDataset
}

// NewExportData wraps a copy of ds in an export envelope.
func NewExportData(ds *models.HealthDataset, now time.Time) *ExportData {
	return &ExportData{
		Version:       ExportVersion,
		ExportedAt:    now,
		Tool:          "healthtrack",
		HealthDataset: *ds.Clone(),
	}
}

// ExportJSON exports all data as indented JSON.
func ExportJSON(ds *models.HealthDataset, now time.Time) ([]byte, error) {
	return json.MarshalIndent(NewExportData(ds, now), "", "  ")
}

// ExportYAML exports all data as YAML with readings grouped by category.
func ExportYAML(ds *models.HealthDataset, now time.Time) ([]byte, error) {
	doc := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Readings   map[string][]yamlRecord `yaml:"readings"`
		Habits     []yamlHabit             `yaml:"habits"`
	}{
		Version:    ExportVersion,
		ExportedAt: now.Format(time.RFC3339),
		Tool:       "healthtrack",
		Readings:   make(map[string][]yamlRecord),
		Habits:     make([]yamlHabit, 0, len(ds.Habits)),
	}

	for _, r := range ds.WaterIntake {
		doc.Readings[string(models.CategoryWater)] = append(doc.Readings[string(models.CategoryWater)],
			newYAMLRecord(r.ID, r.Timestamp, r.Amount, nil))
	}
	for _, r := range ds.StepCounts {
		doc.Readings[string(models.CategorySteps)] = append(doc.Readings[string(models.CategorySteps)],
			newYAMLRecord(r.ID, r.Timestamp, float64(r.Count), nil))
	}
	for _, r := range ds.Weights {
		doc.Readings[string(models.CategoryWeight)] = append(doc.Readings[string(models.CategoryWeight)],
			newYAMLRecord(r.ID, r.Timestamp, r.Value, r.Note))
	}
	for _, r := range ds.BloodPressures {
		yr := yamlRecord{
			ID:         r.ID,
			RecordedAt: r.Timestamp.Format(time.RFC3339),
			Systolic:   r.Systolic,
			Diastolic:  r.Diastolic,
			Band:       classify.BloodPressure(r.Systolic, r.Diastolic).Name,
		}
		if r.Note != nil {
			yr.Note = *r.Note
		}
		doc.Readings[string(models.CategoryBloodPressure)] = append(doc.Readings[string(models.CategoryBloodPressure)], yr)
	}
	for _, r := range ds.HeartRates {
		yr := newYAMLRecord(r.ID, r.Timestamp, float64(r.BPM), r.Note)
		yr.Band = classify.HeartRate(r.BPM).Name
		doc.Readings[string(models.CategoryHeartRate)] = append(doc.Readings[string(models.CategoryHeartRate)], yr)
	}

	for _, h := range ds.Habits {
		yh := yamlHabit{
			ID:        h.ID,
			Name:      h.Name,
			Frequency: strings.Join(h.Frequency, ","),
			CreatedAt: h.CreatedAt.Format(time.RFC3339),
			Completed: h.CompletedDates,
		}
		if h.Description != nil {
			yh.Description = *h.Description
		}
		doc.Habits = append(doc.Habits, yh)
	}

	return yaml.Marshal(doc)
}

type yamlRecord struct {
	ID         string   `yaml:"id"`
	RecordedAt string   `yaml:"recorded_at"`
	Value      *float64 `yaml:"value,omitempty"`
	Systolic   float64  `yaml:"systolic,omitempty"`
	Diastolic  float64  `yaml:"diastolic,omitempty"`
	Band       string   `yaml:"band,omitempty"`
	Note       string   `yaml:"note,omitempty"`
}

func newYAMLRecord(id string, at time.Time, value float64, note *string) yamlRecord {
	yr := yamlRecord{ID: id, RecordedAt: at.Format(time.RFC3339), Value: &value}
	if note != nil {
		yr.Note = *note
	}
	return yr
}

type yamlHabit struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Frequency   string   `yaml:"frequency"`
	CreatedAt   string   `yaml:"created_at"`
	Completed   []string `yaml:"completed"`
}

// mdRow is one rendered table row with its timestamp for filtering.
type mdRow struct {
	at    time.Time
	cells []string
}

// ExportMarkdown renders data as Markdown tables. A non-nil category limits
// output to that category; a non-nil since drops readings recorded earlier.
func ExportMarkdown(ds *models.HealthDataset, category *models.Category, since *time.Time, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Health Export - %s\n\n", dates.FormatDate(now)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, c := range models.AllCategories {
		if category != nil && *category != c {
			continue
		}
		if c == models.CategoryHabit {
			writeHabitTable(&sb, ds.Habits)
			continue
		}

		header, rows := markdownRows(ds, c)
		if since != nil {
			kept := rows[:0]
			for _, r := range rows {
				if !r.at.Before(*since) {
					kept = append(kept, r)
				}
			}
			rows = kept
		}
		if len(rows) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", c))
		sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
		sb.WriteString("|" + strings.Repeat("------|", len(header)) + "\n")
		for _, r := range rows {
			sb.WriteString("| " + strings.Join(r.cells, " | ") + " |\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func markdownRows(ds *models.HealthDataset, c models.Category) ([]string, []mdRow) {
	const layout = "2006-01-02 15:04"
	ts := func(t time.Time) string { return t.In(time.Local).Format(layout) }
	unit := models.CategoryUnits[c]
	var rows []mdRow

	switch c {
	case models.CategoryWater:
		for _, r := range ds.WaterIntake {
			rows = append(rows, mdRow{r.Timestamp, []string{ts(r.Timestamp), fmt.Sprintf("%.0f %s", r.Amount, unit)}})
		}
		return []string{"Date", "Value"}, rows
	case models.CategorySteps:
		for _, r := range ds.StepCounts {
			rows = append(rows, mdRow{r.Timestamp, []string{ts(r.Timestamp), fmt.Sprintf("%d %s", r.Count, unit)}})
		}
		return []string{"Date", "Value"}, rows
	case models.CategoryWeight:
		for _, r := range ds.Weights {
			rows = append(rows, mdRow{r.Timestamp, []string{ts(r.Timestamp), fmt.Sprintf("%.1f %s", r.Value, unit), deref(r.Note)}})
		}
		return []string{"Date", "Value", "Notes"}, rows
	case models.CategoryBloodPressure:
		for _, r := range ds.BloodPressures {
			band := classify.BloodPressure(r.Systolic, r.Diastolic)
			rows = append(rows, mdRow{r.Timestamp, []string{
				ts(r.Timestamp),
				fmt.Sprintf("%.0f/%.0f %s", r.Systolic, r.Diastolic, unit),
				band.Name,
				deref(r.Note),
			}})
		}
		return []string{"Date", "Value", "Band", "Notes"}, rows
	case models.CategoryHeartRate:
		for _, r := range ds.HeartRates {
			rows = append(rows, mdRow{r.Timestamp, []string{
				ts(r.Timestamp),
				fmt.Sprintf("%d %s", r.BPM, unit),
				classify.HeartRate(r.BPM).Name,
				deref(r.Note),
			}})
		}
		return []string{"Date", "Value", "Band", "Notes"}, rows
	}
	return nil, nil
}

func writeHabitTable(sb *strings.Builder, habits []models.Habit) {
	if len(habits) == 0 {
		return
	}
	sb.WriteString("## habit\n\n")
	sb.WriteString("| Name | Days | Completions | Created |\n")
	sb.WriteString("|------|------|-------------|---------|\n")
	for _, h := range habits {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
			h.Name, strings.Join(h.Frequency, ","), len(h.CompletedDates), dates.FormatDate(h.CreatedAt)))
	}
	sb.WriteString("\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ImportJSON decodes an export (or a bare dataset) after renaming legacy fields.
func ImportJSON(data []byte) (*models.HealthDataset, error) {
	migrated, _, err := models.MigrateLegacy(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	var export ExportData
	if err := json.Unmarshal(migrated, &export); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	ds := export.HealthDataset
	ds.Normalize()
	return &ds, nil
}
