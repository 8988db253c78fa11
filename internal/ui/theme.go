// ABOUTME: Terminal styles for healthtrack output built on lipgloss.
// ABOUTME: Small set of reusable styles, band badges and trend arrows.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/healthtrack/internal/classify"
	"github.com/harperreed/healthtrack/internal/stats"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

// Heading renders a section title.
func Heading(title string) string {
	return Title.Render(title)
}

// LabelValue renders "label: value" with the label highlighted.
func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// BandBadge renders a band name in its own color.
func BandBadge(b classify.Band) string {
	style := lipgloss.NewStyle().Bold(true)
	if b.Color != "" {
		style = style.Foreground(lipgloss.Color(b.Color))
	}
	return style.Render(b.Name)
}

// SeverityStyle picks a style for a severity level.
func SeverityStyle(s classify.Severity) lipgloss.Style {
	switch {
	case s >= classify.SeverityHigh:
		return Bad
	case s == classify.SeverityElevated:
		return Warn
	case s == classify.SeverityNormal:
		return Good
	default:
		return Muted
	}
}

// TrendArrow renders a direction as an arrow.
func TrendArrow(d stats.Direction) string {
	switch d {
	case stats.Up:
		return "↑"
	case stats.Down:
		return "↓"
	default:
		return "→"
	}
}

// ProgressBar renders goal progress as a fixed-width bar with a percentage.
func ProgressBar(p stats.Progress, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(p.Ratio*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := Warn
	if p.Reached {
		style = Good
	}
	return fmt.Sprintf("%s %3.0f%%", style.Render(bar), p.Ratio*100)
}

// BarChart renders bars horizontally, one line per bar, scaled to width.
func BarChart(bars []stats.Bar, width int, format func(float64) string) string {
	if len(bars) == 0 {
		return Muted.Render("no data")
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := int(b.Percent/100*float64(width) + 0.5)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			Muted.Render(b.Date),
			Good.Render(strings.Repeat("▇", n)),
			format(b.Value)))
	}
	return strings.Join(lines, "\n")
}
