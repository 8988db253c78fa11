// ABOUTME: Clinical-style bands for blood pressure and heart rate readings.
// ABOUTME: Rules are evaluated in a fixed order and the first match wins.
package classify

import (
	"fmt"
	"sort"
)

// Severity orders bands from least to most concerning.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityNormal
	SeverityElevated
	SeverityHigh
	SeverityStage2
	SeverityCrisis
)

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityElevated:
		return "elevated"
	case SeverityHigh:
		return "high"
	case SeverityStage2:
		return "stage2"
	case SeverityCrisis:
		return "crisis"
	default:
		return "unknown"
	}
}

// Band is the classification of a single reading.
type Band struct {
	Name        string   `json:"name"`
	Severity    Severity `json:"severity"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// Blood pressure bands.
var (
	BPCrisis = Band{
		Name:        "Hypertensive Crisis",
		Severity:    SeverityCrisis,
		Color:       "#B71C1C",
		Description: "Seek emergency care immediately",
	}
	BPStage2 = Band{
		Name:        "High (Stage 2)",
		Severity:    SeverityStage2,
		Color:       "#F44336",
		Description: "Consult your doctor",
	}
	BPStage1 = Band{
		Name:        "High (Stage 1)",
		Severity:    SeverityHigh,
		Color:       "#FF9800",
		Description: "Consider lifestyle changes",
	}
	BPElevated = Band{
		Name:        "Elevated",
		Severity:    SeverityElevated,
		Color:       "#FFC107",
		Description: "Monitor regularly",
	}
	BPNormal = Band{
		Name:        "Normal",
		Severity:    SeverityNormal,
		Color:       "#4CAF50",
		Description: "Healthy blood pressure",
	}
	BPUnknown = Band{
		Name:        "Unknown",
		Severity:    SeverityUnknown,
		Color:       "#9E9E9E",
		Description: "Reading does not fit a category",
	}
)

// Heart rate bands.
var (
	HRResting = Band{
		Name:        "Resting",
		Severity:    SeverityNormal,
		Color:       "#2196F3",
		Description: "Below 60 bpm",
	}
	HRNormal = Band{
		Name:        "Normal",
		Severity:    SeverityNormal,
		Color:       "#4CAF50",
		Description: "60-100 bpm",
	}
	HRElevated = Band{
		Name:        "Elevated",
		Severity:    SeverityElevated,
		Color:       "#FF9800",
		Description: "101-140 bpm",
	}
	HRHigh = Band{
		Name:        "High",
		Severity:    SeverityHigh,
		Color:       "#F44336",
		Description: "Above 140 bpm",
	}
)

// BloodPressure classifies a systolic/diastolic pair.
//
// The stage 1 and elevated rules overlap with the ones above them; order
// decides. For example 135/95 is stage 2 because the diastolic check fires first.
func BloodPressure(systolic, diastolic float64) Band {
	s, d := systolic, diastolic
	switch {
	case s > 180 || d > 120:
		return BPCrisis
	case s >= 140 || d >= 90:
		return BPStage2
	case (s >= 130 && s <= 139) || (d >= 80 && d <= 89):
		return BPStage1
	case s >= 120 && s <= 129 && d < 80:
		return BPElevated
	case s < 120 && d < 80:
		return BPNormal
	default:
		return BPUnknown
	}
}

// HeartRate classifies beats per minute.
func HeartRate(bpm int) Band {
	switch {
	case bpm < 60:
		return HRResting
	case bpm <= 100:
		return HRNormal
	case bpm <= 140:
		return HRElevated
	default:
		return HRHigh
	}
}

// MostSevere returns the band with the highest severity. Earlier bands win
// ties. With no bands it returns an unknown band.
func MostSevere(bands ...Band) Band {
	if len(bands) == 0 {
		return BPUnknown
	}
	worst := bands[0]
	for _, b := range bands[1:] {
		if b.Severity > worst.Severity {
			worst = b
		}
	}
	return worst
}

// SortBySeverity orders bands most severe first, stable for equal severity.
func SortBySeverity(bands []Band) {
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].Severity > bands[j].Severity
	})
}

// Kind names a classifiable reading type.
type Kind string

const (
	KindBloodPressure Kind = "blood-pressure"
	KindHeartRate     Kind = "heart-rate"
)

// Reading classifies raw values by kind. Blood pressure takes two values
// (systolic, diastolic); heart rate takes one.
func Reading(kind Kind, values ...float64) (Band, error) {
	switch kind {
	case KindBloodPressure:
		if len(values) != 2 {
			return Band{}, fmt.Errorf("blood pressure needs systolic and diastolic, got %d values", len(values))
		}
		return BloodPressure(values[0], values[1]), nil
	case KindHeartRate:
		if len(values) != 1 {
			return Band{}, fmt.Errorf("heart rate needs one value, got %d", len(values))
		}
		return HeartRate(int(values[0])), nil
	default:
		return Band{}, fmt.Errorf("unknown reading kind: %s", kind)
	}
}
