package app

import (
	"time"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// RefreshMsg requests a new fetch, the same one issued on startup.
type RefreshMsg struct{}

// FetchResultMsg carries the outcome of a fetch.
type FetchResultMsg struct {
	At      time.Time
	Err     error
	Records []models.InteractionRecord
}

// HistoryLoadedMsg carries the fetch history.
type HistoryLoadedMsg struct {
	Err       error
	Snapshots []models.FetchSnapshot
	Totals    []float64
}

// ExportMsg requests a PNG export of the current chart.
type ExportMsg struct{}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Err  error
	Path string
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// CopyToClipboardMsg requests copying text to clipboard.
type CopyToClipboardMsg struct {
	Text string
}

// ClipboardResultMsg contains the result of a clipboard operation.
type ClipboardResultMsg struct {
	Err  error
	Text string
}
