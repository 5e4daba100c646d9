// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/sectors"
	"github.com/j-veylop/interaction-sector-viewer/internal/services/interactions"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Phase is what the sector view is currently showing.
type Phase int

const (
	// PhaseLoading means no fetch has completed yet.
	PhaseLoading Phase = iota
	// PhaseReady means the chart can be drawn.
	PhaseReady
	// PhaseNoData means the last fetch failed or returned nothing.
	PhaseNoData
)

// String returns the string representation of a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseNoData:
		return "no data"
	default:
		return "unknown"
	}
}

// State is the application store. It is written only by Model.Update, on
// the Bubble Tea event loop, so tabs may read it from View without locking.
type State struct {
	LastFetched time.Time
	Err         error
	HistoryErr  error
	View        *sectors.View
	Records     []models.InteractionRecord
	History     []models.FetchSnapshot
	Totals      []float64
	LastExport  string

	notifications   []Notification
	notificationSeq int

	Phase    Phase
	Fetches  int
	Fetching bool
}

// NewState creates an empty store waiting for its first fetch.
func NewState() *State {
	return &State{
		Phase:         PhaseLoading,
		notifications: make([]Notification, 0),
	}
}

// BeginFetch marks a fetch as in flight. It reports false if one already is.
func (s *State) BeginFetch() bool {
	if s.Fetching {
		return false
	}
	s.Fetching = true
	return true
}

// ApplyFetch replaces the record list with the outcome of a fetch and
// recomputes the derived view. Any error, and an empty list, leave the
// store in PhaseNoData with no view.
func (s *State) ApplyFetch(records []models.InteractionRecord, err error, at time.Time) {
	s.Fetching = false
	s.Fetches++
	s.LastFetched = at

	if err == nil {
		var view *sectors.View
		view, err = sectors.BuildView(records)
		if err == nil {
			s.Records = records
			s.View = view
			s.Err = nil
			s.Phase = PhaseReady
			return
		}
	}

	s.Records = nil
	s.View = nil
	s.Err = err
	s.Phase = PhaseNoData
}

// NoDataReason describes why there is nothing to chart.
func (s *State) NoDataReason() string {
	switch {
	case s.Err == nil:
		return ""
	case errors.Is(s.Err, interactions.ErrEmptyData), errors.Is(s.Err, sectors.ErrNoRecords):
		return "The data source returned no interactions."
	default:
		return "The data source could not be reached."
	}
}

// SetHistory replaces the fetch history shown in the history tab.
func (s *State) SetHistory(snaps []models.FetchSnapshot, totals []float64, err error) {
	s.HistoryErr = err
	if err != nil {
		return
	}
	s.History = snaps
	s.Totals = totals
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.notificationSeq++
	id := fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns the notifications that have not expired.
func (s *State) GetNotifications() []Notification {
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
