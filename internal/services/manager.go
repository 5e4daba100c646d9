// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/interaction-sector-viewer/internal/config"
	"github.com/j-veylop/interaction-sector-viewer/internal/db"
	"github.com/j-veylop/interaction-sector-viewer/internal/logger"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/sectors"
	"github.com/j-veylop/interaction-sector-viewer/internal/services/interactions"
)

type (
	// SourceChangedEvent is emitted when a watched file source is modified.
	SourceChangedEvent struct {
		Source string
	}

	// HistoryUpdatedEvent is emitted after a fetch has been recorded.
	HistoryUpdatedEvent struct {
		Snapshot models.FetchSnapshot
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SourceChangedEvent) isServiceEvent()  {}
func (HistoryUpdatedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Notifier shows a desktop notification.
type Notifier func(title, body string) error

func beeepNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	fetcher     *interactions.Service
	watcher     *interactions.Watcher
	database    *db.DB
	notify      Notifier
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	notifyOnErr bool
	closeOnce   sync.Once
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		stopChan:    make(chan struct{}),
		notify:      beeepNotify,
		notifyOnErr: cfg.NotifyOnError,
	}

	source := interactions.NewSource(cfg.SourceURL, cfg.FetchTimeout)
	fetchCfg := interactions.DefaultConfig()
	fetchCfg.Retries = cfg.FetchRetries
	fetchCfg.OnComplete = m.recordFetch
	m.fetcher = interactions.New(source, fetchCfg)

	if cfg.HistoryEnabled {
		database, err := db.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		m.database = database
		m.maintainHistory()
	}

	if fs, ok := source.(*interactions.FileSource); ok && cfg.WatchSource {
		w, err := interactions.Watch(fs.Path())
		if err != nil {
			// The viewer still works without live reload.
			logger.Warn("failed to watch source file", "path", fs.Path(), "error", err)
		} else {
			m.watcher = w
		}
	}

	go m.routeEvents()

	return m, nil
}

// maintainHistory trims the history log left by earlier runs and reports
// what it holds.
func (m *Manager) maintainHistory() {
	ctx := context.Background()

	if version, err := m.database.SchemaVersion(); err == nil {
		logger.Debug("history schema", "version", version)
	}

	pruned, err := m.database.PruneSnapshots(ctx, db.DefaultRetention)
	if err != nil {
		logger.Warn("failed to prune fetch history", "error", err)
	} else if pruned > 0 {
		if err := m.database.Vacuum(); err != nil {
			logger.Warn("failed to vacuum history database", "error", err)
		}
	}

	counts, err := m.database.StatusCounts(ctx)
	if err != nil {
		logger.Warn("failed to count fetch history", "error", err)
		return
	}
	logger.Info("fetch history loaded",
		"path", m.database.Path(),
		"ok", counts[models.FetchStatusOK],
		"network_error", counts[models.FetchStatusNetworkError],
		"empty", counts[models.FetchStatusEmpty],
	)
}

// SetNotifier replaces the desktop notifier.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = n
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	var changes <-chan struct{}
	if m.watcher != nil {
		changes = m.watcher.Changes()
	}

	for {
		select {
		case <-changes:
			m.broadcast(SourceChangedEvent{Source: m.fetcher.Source().String()})

		case <-m.stopChan:
			return
		}
	}
}

// Fetch loads the interaction records. Each completed request is recorded
// once in the history log, however many callers shared it. The error, if
// any, is an *interactions.FetchError.
func (m *Manager) Fetch(ctx context.Context) ([]models.InteractionRecord, error) {
	res, err := m.fetcher.Fetch(ctx)
	return res.Records, err
}

// recordFetch turns a completed fetch into a history snapshot.
func (m *Manager) recordFetch(ctx context.Context, res interactions.Result, fetchErr error) {
	snap := models.FetchSnapshot{
		FetchedAt: res.FetchedAt,
		Source:    res.Source,
		Status:    interactions.Status(fetchErr),
		Total:     len(res.Records),
		Duration:  res.Duration,
	}
	if snap.Source == "" {
		snap.Source = m.fetcher.Source().String()
	}
	if fetchErr != nil {
		snap.Error = fetchErr.Error()
		m.notifyNoData(fetchErr)
	} else {
		snap.Sectors = sectors.Aggregate(res.Records)
	}

	m.record(ctx, &snap)
}

func (m *Manager) record(ctx context.Context, snap *models.FetchSnapshot) {
	if m.database == nil {
		return
	}

	// History is an audit trail; a failed write must not hide fetched data.
	if err := m.database.InsertSnapshot(ctx, snap); err != nil {
		logger.Error("failed to record fetch", "error", err)
		m.broadcast(ErrorEvent{Service: "history", Error: err})
		return
	}
	if _, err := m.database.PruneSnapshots(ctx, db.DefaultRetention); err != nil {
		logger.Warn("failed to prune fetch history", "error", err)
	}

	m.broadcast(HistoryUpdatedEvent{Snapshot: *snap})
}

func (m *Manager) notifyNoData(err error) {
	if !m.notifyOnErr {
		return
	}

	body := "The data source could not be reached."
	if errors.Is(err, interactions.ErrEmptyData) {
		body = "The data source returned no interactions."
	}

	m.mu.RLock()
	notify := m.notify
	m.mu.RUnlock()

	if nerr := notify("Interaction Sector Viewer", body); nerr != nil {
		logger.Warn("failed to send notification", "error", nerr)
	}
}

// History returns the most recent fetches, newest first, and the record
// totals of successful fetches, oldest first.
func (m *Manager) History(ctx context.Context, limit int) ([]models.FetchSnapshot, []float64, error) {
	if m.database == nil {
		return nil, nil, nil
	}

	snaps, err := m.database.RecentSnapshots(ctx, limit)
	if err != nil {
		return nil, nil, err
	}
	totals, err := m.database.TotalsSeries(ctx, limit)
	if err != nil {
		return nil, nil, err
	}
	return snaps, totals, nil
}

// HistoryEnabled reports whether fetches are being recorded.
func (m *Manager) HistoryEnabled() bool {
	return m.database != nil
}

// Watching reports whether the source file is watched for changes.
func (m *Manager) Watching() bool {
	return m.watcher != nil
}

// SourceName returns the configured data source location.
func (m *Manager) SourceName() string {
	return m.fetcher.Source().String()
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
// A closed channel yields a nil message.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
