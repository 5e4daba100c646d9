// Package chart builds renderer-independent pie chart specifications.
package chart

import (
	"fmt"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

// Title is the heading shown above the sector chart.
const Title = "Interaction Data by Sector"

// LegendPosition is where renderers place the legend.
type LegendPosition int

const (
	// LegendBottom draws the legend under the chart.
	LegendBottom LegendPosition = iota
	// LegendRight draws the legend beside the chart.
	LegendRight
)

// Palette holds the slice colours. Slices past the end wrap around.
var Palette = []string{
	"#ff6384",
	"#36a2eb",
	"#cc65fe",
	"#ffce56",
	"#4bc0c0",
	"#9966ff",
	"#c9cbcf",
	"#f49ac2",
	"#77dd77",
	"#ff6961",
	"#aec6cf",
}

// Slice is one wedge of the pie.
type Slice struct {
	Category string
	Label    string
	Color    string
	Percent  float64
}

// Spec describes a pie chart independent of how it is drawn.
type Spec struct {
	Title  string
	Slices []Slice
	Legend LegendPosition
}

// ColorAt returns the palette colour for the i-th slice.
func ColorAt(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// FormatLabel renders a legend label, "<category> - <percent>%" with two
// decimals.
func FormatLabel(category string, percent float64) string {
	return fmt.Sprintf("%s - %.2f%%", category, percent)
}

// Build turns per-category percentages into a chart spec, one slice per
// entry in the same order.
func Build(entries []models.PercentEntry) Spec {
	slices := make([]Slice, len(entries))
	for i, e := range entries {
		slices[i] = Slice{
			Category: e.Label,
			Label:    FormatLabel(e.Label, e.Percent),
			Color:    ColorAt(i),
			Percent:  e.Percent,
		}
	}

	return Spec{
		Title:  Title,
		Slices: slices,
		Legend: LegendBottom,
	}
}

// Labels returns the slice labels in order.
func (s Spec) Labels() []string {
	labels := make([]string, len(s.Slices))
	for i, sl := range s.Slices {
		labels[i] = sl.Label
	}
	return labels
}

// SliceAt returns the slice covering the given fraction of the full turn,
// 0 <= frac < 1, measured from the start of the first slice. It returns -1
// for an empty spec.
func (s Spec) SliceAt(frac float64) int {
	if len(s.Slices) == 0 {
		return -1
	}

	total := 0.0
	for _, sl := range s.Slices {
		total += sl.Percent
	}
	if total <= 0 {
		return -1
	}

	target := frac * total
	acc := 0.0
	for i, sl := range s.Slices {
		acc += sl.Percent
		if target < acc {
			return i
		}
	}
	return len(s.Slices) - 1
}
