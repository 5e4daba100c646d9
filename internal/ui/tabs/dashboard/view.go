package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/interaction-sector-viewer/internal/app"
	"github.com/j-veylop/interaction-sector-viewer/internal/chart"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/components"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

const (
	noDataTitle   = "Data Source Error 404"
	noDataContact = "contact customer support"
)

// View renders the dashboard component.
func (m *Model) View() string {
	var content string

	switch m.state.Phase {
	case app.PhaseLoading:
		return m.renderLoading()
	case app.PhaseNoData:
		content = m.renderNoData()
	default:
		content = m.renderChart()
	}

	if m.state.Fetching {
		m.spinner.SetLabel(components.RefreshLabel)
		content = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderSpinnerStatus(m.spinner, m.innerWidth()),
			content,
		)
	}

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	m.spinner.SetLabel(components.LoadingLabel)
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the chart title.
func (m *Model) renderTitle() string {
	title := chart.Title
	if v := m.state.View; v != nil && v.Chart.Title != "" {
		title = v.Chart.Title
	}
	return styles.TitleStyle.Render(title)
}

// renderNoData renders the error panel shown instead of a chart.
func (m *Model) renderNoData() string {
	panel := styles.NoDataStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			noDataTitle,
			"",
			lipgloss.NewStyle().Bold(false).Render(noDataContact),
		),
	)

	rows := []string{m.renderTitle(), panel}
	if reason := m.state.NoDataReason(); reason != "" {
		rows = append(rows, "", styles.HelpStyle.Render(reason))
	}
	rows = append(rows, styles.HelpStyle.Render("Press r to try again"))

	return styles.CenterHorizontal(
		lipgloss.JoinVertical(lipgloss.Center, rows...),
		m.innerWidth(),
	)
}

// renderChart renders the pie, or share bars, for the current view.
func (m *Model) renderChart() string {
	v := m.state.View
	if v.Empty() {
		return styles.HelpStyle.Render("No data available")
	}

	var body string
	if m.showBars {
		counts := make([]int, len(v.Counts))
		for i, c := range v.Counts {
			counts[i] = c.Count
		}
		body = components.RenderShareBars(v.Chart, counts, max(m.innerWidth()-4, 20))
	} else {
		legendLines := len(v.Chart.Slices) + 1
		// title, summary and padding take five rows
		radius := components.PieRadiusFor(m.innerWidth(), m.height-5, legendLines)
		body = styles.CenterHorizontal(components.RenderPie(v.Chart, radius), m.innerWidth())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		body,
		"",
		m.renderSummary(),
	)
}

// renderSummary renders the record and category counts under the chart.
func (m *Model) renderSummary() string {
	v := m.state.View

	parts := []string{
		fmt.Sprintf("%s interactions", styles.InfoTextStyle.Render(fmt.Sprintf("%d", v.Total))),
		fmt.Sprintf("%s sectors", styles.InfoTextStyle.Render(fmt.Sprintf("%d", len(v.Counts)))),
	}
	if !m.state.LastFetched.IsZero() {
		parts = append(parts, "fetched "+m.state.LastFetched.Format("15:04:05"))
	}

	return styles.HelpStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) innerWidth() int {
	return max(m.width-2, 0)
}
