package timeline

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/interaction-sector-viewer/internal/app"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/sectors"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/components"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

const (
	chartHeight = 10
	topSectors  = 5
)

// View renders the timeline tab.
func (m *Model) View() string {
	title := styles.TitleStyle.Render("Interactions per Day")

	var content string
	switch {
	case m.state.Phase == app.PhaseLoading:
		content = lipgloss.JoinVertical(lipgloss.Left, title,
			styles.HelpStyle.Render("Waiting for data..."))
	case m.state.View.Empty():
		content = lipgloss.JoinVertical(lipgloss.Left, title,
			styles.HelpStyle.Render("No data available"))
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			title,
			m.renderChart(),
			"",
			m.renderSummary(),
			"",
			m.renderTopSectors(),
		)
	}

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderChart() string {
	// asciigraph adds the y-axis labels on top of the plot width
	width := max(m.width-14, 20)
	return components.RenderDailyChart(m.state.View.Daily, width, chartHeight)
}

func (m *Model) renderSummary() string {
	daily := m.state.View.Daily

	busiest, _ := Busiest(daily)
	avg := float64(m.state.View.Total) / float64(len(daily))

	rows := []string{
		styles.SubTitleStyle.Render("Summary"),
		fmt.Sprintf("Days:     %s", styles.InfoTextStyle.Render(fmt.Sprintf("%d", len(daily)))),
		fmt.Sprintf("Busiest:  %s (%d)", styles.InfoTextStyle.Render(busiest.Day), busiest.Count),
		fmt.Sprintf("Average:  %s per day", styles.InfoTextStyle.Render(fmt.Sprintf("%.1f", avg))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTopSectors ranks the busiest sectors of the current record list.
func (m *Model) renderTopSectors() string {
	ranked := sectors.SortedByCount(m.state.View.Counts)
	if len(ranked) > topSectors {
		ranked = ranked[:topSectors]
	}

	values := make([]float64, len(ranked))
	for i, c := range ranked {
		values[i] = float64(c.Count)
	}
	labels := models.Labels(ranked)

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render(fmt.Sprintf("Top %d sectors", len(ranked))),
		components.RenderBarChart(values, labels, min(m.width-4, 80)),
	)
}

// Busiest returns the day with the most interactions, first one on ties.
func Busiest(daily []models.DailyCount) (models.DailyCount, bool) {
	if len(daily) == 0 {
		return models.DailyCount{}, false
	}
	best := daily[0]
	for _, d := range daily[1:] {
		if d.Count > best.Count {
			best = d
		}
	}
	return best, true
}
