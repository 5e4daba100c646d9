package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
	"github.com/j-veylop/interaction-sector-viewer/internal/version"
)

const timeFormat = "2006-01-02 15:04:05"

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderStatusCard(),
		m.renderAboutCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		database := "disabled"
		if m.config.HistoryEnabled {
			database = m.config.DatabasePath
		}
		logFile := m.config.LogFile
		if logFile == "" {
			logFile = "off"
		}

		rows = append(rows,
			m.renderConfigRow("Source", m.config.SourceURL),
			m.renderConfigRow("Fetch Timeout", m.config.FetchTimeout.String()),
			m.renderConfigRow("Fetch Retries", strconv.Itoa(m.config.FetchRetries)),
			m.renderConfigRow("History", database),
			m.renderConfigRow("Watch Source", onOff(m.config.WatchSource)),
			m.renderConfigRow("Notify On Error", onOff(m.config.NotifyOnError)),
			m.renderConfigRow("Export Dir", m.config.ExportDir),
			m.renderConfigRow("Log File", logFile),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Press 'c' to copy the source"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderStatusCard renders the outcome of the latest fetch.
func (m *Model) renderStatusCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Status"))
	rows = append(rows, "")

	lastFetch := "never"
	if !m.state.LastFetched.IsZero() {
		lastFetch = m.state.LastFetched.Format(timeFormat)
	}
	lastExport := m.state.LastExport
	if lastExport == "" {
		lastExport = "none"
	}

	records := 0
	if m.state.View != nil {
		records = m.state.View.Total
	}

	rows = append(rows,
		m.renderConfigRow("State", m.state.Phase.String()),
		m.renderConfigRow("Fetches", strconv.Itoa(m.state.Fetches)),
		m.renderConfigRow("Last Fetch", lastFetch),
		m.renderConfigRow("Records", strconv.Itoa(records)),
		m.renderConfigRow("Last Export", lastExport),
	)

	if reason := m.state.NoDataReason(); reason != "" {
		rows = append(rows, "", styles.ErrorTextStyle.Render(reason))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	info := version.Info()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Interaction Sector Viewer"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", version.Version))
	rows = append(rows, m.renderConfigRow("Build Date", version.Date))
	rows = append(rows, m.renderConfigRow("Git Commit", version.Commit))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render(info))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
