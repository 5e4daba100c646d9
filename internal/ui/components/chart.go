// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.HotPink),
	)
}

// RenderDailyChart plots interactions per day. A single day is padded to a
// flat line so the chart still has an x-axis.
func RenderDailyChart(daily []models.DailyCount, width, height int) string {
	if len(daily) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	data := make([]float64, len(daily))
	for i, d := range daily {
		data[i] = float64(d.Count)
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}

	caption := daily[0].Day
	if len(daily) > 1 {
		caption = fmt.Sprintf("%s → %s", daily[0].Day, daily[len(daily)-1].Day)
	}
	return RenderLineChart(data, width, height, caption)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	barWidth := max(width-maxLabelLen-10, 10) // Leave room for label and value

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		paddedLabel := strings.Repeat(" ", maxLabelLen-lipgloss.Width(label)) + label
		barLen := max(int((v/maxVal)*float64(barWidth)), 0)

		bar := strings.Repeat("█", barLen)
		lines = append(lines, paddedLabel+" │"+bar+fmt.Sprintf(" %g", v))
	}

	return strings.Join(lines, "\n")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend creates a chart legend with perRow entries on each line.
// perRow <= 0 puts every entry on one line.
func RenderLegend(items []LegendItem, perRow int) string {
	if perRow <= 0 {
		perRow = len(items)
	}

	var rows []string
	var parts []string
	for i, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
		if (i+1)%perRow == 0 {
			rows = append(rows, strings.Join(parts, "  "))
			parts = nil
		}
	}
	if len(parts) > 0 {
		rows = append(rows, strings.Join(parts, "  "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
