package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/interaction-sector-viewer/internal/chart"
	"github.com/j-veylop/interaction-sector-viewer/internal/db"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// Backend is the service layer the application talks to.
type Backend interface {
	Fetch(ctx context.Context) ([]models.InteractionRecord, error)
	History(ctx context.Context, limit int) ([]models.FetchSnapshot, []float64, error)
	Subscribe() (chan services.ServiceEvent, tea.Cmd)
}

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// fetchCmd returns a command that loads the interaction records.
func fetchCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		records, err := b.Fetch(context.Background())
		return FetchResultMsg{
			Records: records,
			Err:     err,
			At:      time.Now(),
		}
	}
}

// loadHistoryCmd returns a command that loads the fetch history.
func loadHistoryCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		snaps, totals, err := b.History(context.Background(), db.DefaultHistoryLimit)
		return HistoryLoadedMsg{
			Snapshots: snaps,
			Totals:    totals,
			Err:       err,
		}
	}
}

// exportCmd returns a command that writes spec as a PNG into dir.
func exportCmd(spec chart.Spec, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := chart.ExportPNG(spec, dir, time.Now())
		return ExportResultMsg{Path: path, Err: err}
	}
}

// copyToClipboardCmd returns a command that writes text to the system clipboard.
func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardResultMsg{Text: text, Err: clipboard.WriteAll(text)}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(b Backend) tea.Cmd {
	ch, _ := b.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     t,
			Message:  message,
			Duration: d,
		}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// errorCmd reports a failed background operation as an ErrorMsg.
func errorCmd(context string, err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err, Context: context}
	}
}

func switchTabCmd(id TabID) tea.Cmd {
	return func() tea.Msg {
		return TabSwitchMsg{Tab: id}
	}
}

func toggleHelpCmd() tea.Cmd {
	return func() tea.Msg {
		return ToggleHelpMsg{}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Refresh returns a command that asks the model to fetch again.
func Refresh() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

// Export returns a command that asks the model to export the chart.
func Export() tea.Cmd {
	return func() tea.Msg { return ExportMsg{} }
}
