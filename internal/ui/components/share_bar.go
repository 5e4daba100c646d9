package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/interaction-sector-viewer/internal/chart"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

// ShareBar renders one sector's share of all interactions.
type ShareBar struct {
	progress progress.Model
	color    string
}

// NewShareBar creates a bar filled with the given slice colour.
func NewShareBar(color string) ShareBar {
	p := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	p.EmptyColor = string(styles.BgLight)

	return ShareBar{progress: p, color: color}
}

// View renders "label  [bar]  12.34%" in width columns. labelWidth fixes
// the label column so bars line up.
func (s ShareBar) View(label string, percent float64, labelWidth, width int) string {
	pctStr := styles.ProgressPercentStyle.Render(fmt.Sprintf("%.2f%%", percent))
	labelStr := styles.ProgressLabelStyle.Width(labelWidth).MaxWidth(labelWidth).Render(label)

	barWidth := max(width-labelWidth-lipgloss.Width(pctStr)-2, 5)
	s.progress.Width = barWidth
	bar := s.progress.ViewAs(percent / 100)

	return lipgloss.JoinHorizontal(lipgloss.Top, labelStr, " ", bar, " ", pctStr)
}

// RenderShareBars draws one bar per slice of spec, in slice order.
func RenderShareBars(spec chart.Spec, counts []int, width int) string {
	if len(spec.Slices) == 0 {
		return ""
	}

	labelWidth := 0
	for _, sl := range spec.Slices {
		labelWidth = max(labelWidth, lipgloss.Width(sl.Category))
	}
	labelWidth = min(labelWidth+1, max(width/3, 8))

	rows := make([]string, len(spec.Slices))
	for i, sl := range spec.Slices {
		label := sl.Category
		if i < len(counts) {
			label = fmt.Sprintf("%s (%d)", sl.Category, counts[i])
		}
		rows[i] = NewShareBar(sl.Color).View(label, sl.Percent, labelWidth+6, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
