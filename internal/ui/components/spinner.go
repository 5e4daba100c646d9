package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/interaction-sector-viewer/internal/ui/styles"
)

// Labels shown by the fetch spinner.
const (
	LoadingLabel = "Loading interactions..."
	RefreshLabel = "Refreshing..."
)

// LoadingSpinner is the fetch indicator of the sectors tab. It shows
// LoadingLabel centered before the first fetch completes and RefreshLabel
// as a status line above the chart while a later fetch is in flight.
type LoadingSpinner struct {
	spinner spinner.Model
	label   string
	style   lipgloss.Style
}

// NewSpinner creates a fetch spinner starting with the given label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return LoadingSpinner{
		spinner: s,
		label:   label,
		style:   lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// Init starts the spinner animation.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// ViewWithLabel renders the current frame followed by the label.
func (l LoadingSpinner) ViewWithLabel() string {
	return l.spinner.View() + " " + l.style.Render(l.label)
}

// SetLabel changes the label, e.g. from LoadingLabel to RefreshLabel once
// the first fetch has landed.
func (l *LoadingSpinner) SetLabel(label string) {
	l.label = label
}

// RenderSpinnerCentered renders a spinner centered in a given width and height.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.ViewWithLabel(), width, height)
}

// RenderSpinnerStatus renders a spinner as a right-aligned single line, used
// over content that stays visible while it is being refreshed.
func RenderSpinnerStatus(s LoadingSpinner, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, s.ViewWithLabel())
}
