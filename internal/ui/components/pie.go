package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/interaction-sector-viewer/internal/chart"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

const (
	// MinPieRadius is the smallest radius RenderPie draws.
	MinPieRadius = 3

	// cellAspect is how much taller a terminal cell is than it is wide.
	cellAspect = 2.0

	pieCell = "█"
)

// PieRadiusFor returns the largest radius whose pie fits in the given
// area, leaving room for legendLines below it.
func PieRadiusFor(width, height, legendLines int) int {
	byHeight := (height - legendLines - 1) / 2
	byWidth := width / 4
	return max(MinPieRadius, min(byHeight, byWidth))
}

// RenderPie draws spec as a filled circle of coloured cells with the
// legend underneath. Rows are half as many as columns so the circle looks
// round in a terminal.
func RenderPie(spec chart.Spec, radius int) string {
	if len(spec.Slices) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	radius = max(radius, MinPieRadius)

	cellStyles := make([]lipgloss.Style, len(spec.Slices))
	for i, sl := range spec.Slices {
		cellStyles[i] = styles.SliceStyle(sl.Color)
	}

	cols := radius * 4
	rows := radius * 2
	r := float64(radius)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		y := (float64(row) + 0.5 - float64(rows)/2) * cellAspect / 2
		for col := 0; col < cols; col++ {
			x := (float64(col) + 0.5 - float64(cols)/2) / 2
			if x*x+y*y > r*r {
				b.WriteByte(' ')
				continue
			}
			idx := spec.SliceAt(angleFraction(x, y))
			if idx < 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cellStyles[idx].Render(pieCell))
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}

	pie := strings.TrimRight(b.String(), " ")
	legend := RenderLegend(LegendItems(spec), 1)

	if spec.Legend == chart.LegendRight {
		return lipgloss.JoinHorizontal(lipgloss.Center, pie, "  ", legend)
	}
	return lipgloss.JoinVertical(lipgloss.Center, pie, "", legend)
}

// angleFraction maps a point to its clockwise position around the circle,
// starting at twelve o'clock, as a fraction in [0, 1).
func angleFraction(x, y float64) float64 {
	a := math.Atan2(x, -y)
	if a < 0 {
		a += 2 * math.Pi
	}
	f := a / (2 * math.Pi)
	if f >= 1 {
		f = 0
	}
	return f
}

// LegendItems returns one legend entry per slice.
func LegendItems(spec chart.Spec) []LegendItem {
	items := make([]LegendItem, len(spec.Slices))
	for i, sl := range spec.Slices {
		items[i] = LegendItem{Label: sl.Label, Color: lipgloss.Color(sl.Color)}
	}
	return items
}
