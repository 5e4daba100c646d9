package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/components"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

const timeFormat = "2006-01-02 15:04:05"

// View renders the history tab.
func (m *Model) View() string {
	if m.config != nil && !m.config.HistoryEnabled {
		return m.renderDisabled()
	}
	if m.state.HistoryErr != nil && len(m.state.History) == 0 {
		return m.renderError()
	}
	if len(m.state.History) == 0 {
		return m.renderEmpty()
	}

	m.clampSelection()

	sections := []string{
		m.renderHeader(),
		m.renderTotals(),
		m.renderTable(),
		m.renderDetail(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderDisabled() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		styles.HelpStyle.Render("Fetch history is disabled."),
		styles.HelpStyle.Render("Set HISTORY_ENABLED=true to record fetches."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %v",
		styles.ErrorTextStyle.Render("Error:"),
		m.state.HistoryErr,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		styles.HelpStyle.Render("No fetches recorded yet."),
		styles.HelpStyle.Render("Each fetch is logged here once it completes."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	var ok, failed int
	for _, s := range m.state.History {
		if s.OK() {
			ok++
		} else {
			failed++
		}
	}

	title := styles.TitleStyle.Render("History")
	summary := fmt.Sprintf("%d fetches  %s  %s",
		len(m.state.History),
		styles.SuccessTextStyle.Render(fmt.Sprintf("%d ok", ok)),
		styles.ErrorTextStyle.Render(fmt.Sprintf("%d failed", failed)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, "")
}

// renderTotals draws the record totals of successful fetches, oldest first.
func (m *Model) renderTotals() string {
	if len(m.state.Totals) == 0 {
		return ""
	}

	width := max(m.width-20, 10)
	spark := components.RenderSparkline(m.state.Totals, width)

	lo, hi := m.state.Totals[0], m.state.Totals[0]
	for _, v := range m.state.Totals {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render("Records per fetch"),
		lipgloss.NewStyle().Foreground(styles.Primary).Render(spark),
		styles.HelpStyle.Render(fmt.Sprintf("min %g  max %g", lo, hi)),
		"",
	)
}

func (m *Model) renderTable() string {
	header := fmt.Sprintf("%-19s  %-13s  %7s  %8s  %s", "Time", "Status", "Records", "Took", "Source")
	rows := []string{styles.TableHeaderStyle.Render(header)}

	sourceWidth := max(m.width-60, 10)
	for i, s := range m.state.History {
		status := fmt.Sprintf("%-13s", s.Status)
		line := fmt.Sprintf("%-19s  %s  %7d  %8s  %s",
			s.FetchedAt.Local().Format(timeFormat),
			styles.GetStatusStyle(s.Status).Render(status),
			s.Total,
			formatDuration(s),
			ansi.Truncate(s.Source, sourceWidth, "…"),
		)

		if i == m.selected {
			line = styles.TableSelectedStyle.Render(ansi.Strip(line))
		} else {
			line = styles.TableCellStyle.Render(line)
		}
		rows = append(rows, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// renderDetail shows the sector breakdown or error of the selected fetch.
func (m *Model) renderDetail() string {
	s, ok := m.Selected()
	if !ok {
		return ""
	}

	title := styles.CardTitleStyle.Render("Fetch at " + s.FetchedAt.Local().Format(timeFormat))
	cardWidth := min(max(m.width-6, 40), 100)

	var body string
	switch {
	case s.Error != "":
		body = styles.ErrorTextStyle.Render(wrap(s.Error, cardWidth-4))
	case len(s.Sectors) == 0:
		body = styles.HelpStyle.Render("No sectors recorded")
	default:
		values := make([]float64, len(s.Sectors))
		labels := make([]string, len(s.Sectors))
		for i, c := range s.Sectors {
			values[i] = float64(c.Count)
			labels[i] = c.Label
		}
		body = components.RenderBarChart(values, labels, cardWidth-4)
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body),
	)
}

func formatDuration(s models.FetchSnapshot) string {
	if s.Duration <= 0 {
		return "-"
	}
	return s.Duration.Round(time.Millisecond).String()
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return strings.TrimSpace(ansi.Wordwrap(text, width, ""))
}
