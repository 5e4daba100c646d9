package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/interaction-sector-viewer/internal/chart"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
	"github.com/j-veylop/interaction-sector-viewer/internal/services"
)

// fakeBackend implements Backend for testing
type fakeBackend struct {
	records    []models.InteractionRecord
	err        error
	snaps      []models.FetchSnapshot
	totals     []float64
	historyErr error
	fetches    int
	events     chan services.ServiceEvent
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{events: make(chan services.ServiceEvent, 10)}
}

func (f *fakeBackend) Fetch(ctx context.Context) ([]models.InteractionRecord, error) {
	f.fetches++
	return f.records, f.err
}

func (f *fakeBackend) History(ctx context.Context, limit int) ([]models.FetchSnapshot, []float64, error) {
	return f.snaps, f.totals, f.historyErr
}

func (f *fakeBackend) Subscribe() (chan services.ServiceEvent, tea.Cmd) {
	return f.events, services.WaitForEvent(f.events)
}

func TestFetchCmd(t *testing.T) {
	b := newFakeBackend()
	b.records = records("A")

	msg, ok := fetchCmd(b)().(FetchResultMsg)
	if !ok {
		t.Fatal("Expected FetchResultMsg")
	}
	if len(msg.Records) != 1 || msg.Err != nil || msg.At.IsZero() {
		t.Errorf("unexpected message %+v", msg)
	}

	b.err = errors.New("down")
	msg = fetchCmd(b)().(FetchResultMsg)
	if msg.Err == nil {
		t.Error("Expected error to be carried")
	}
}

func TestLoadHistoryCmd(t *testing.T) {
	b := newFakeBackend()
	b.snaps = []models.FetchSnapshot{{ID: 7}}
	b.totals = []float64{1, 2}

	msg, ok := loadHistoryCmd(b)().(HistoryLoadedMsg)
	if !ok {
		t.Fatal("Expected HistoryLoadedMsg")
	}
	if len(msg.Snapshots) != 1 || len(msg.Totals) != 2 {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	spec := chart.Build([]models.PercentEntry{{Label: "A", Percent: 100}})

	msg, ok := exportCmd(spec, dir)().(ExportResultMsg)
	if !ok {
		t.Fatal("Expected ExportResultMsg")
	}
	if msg.Err != nil {
		t.Fatalf("export failed: %v", msg.Err)
	}
	if filepath.Dir(msg.Path) != dir {
		t.Errorf("Path = %q, want file in %q", msg.Path, dir)
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	msg = exportCmd(chart.Spec{}, dir)().(ExportResultMsg)
	if msg.Err == nil {
		t.Error("Expected error for empty chart")
	}
}

func TestNotifyCmds(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", notifySuccessCmd, NotificationSuccess},
		{"Error", notifyErrorCmd, NotificationError},
		{"Warning", notifyWarningCmd, NotificationWarning},
		{"Info", notifyInfoCmd, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addMsg, ok := tt.fn("msg")().(AddNotificationMsg)
			if !ok {
				t.Fatal("Expected AddNotificationMsg")
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration <= 0 {
				t.Error("Duration should be positive")
			}
		})
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.SourceChangedEvent{Source: "x"}

	msg, ok := waitForServiceEventCmd(ch)().(ServiceEventMsg)
	if !ok {
		t.Fatal("Expected ServiceEventMsg")
	}
	if _, ok := msg.Event.(services.SourceChangedEvent); !ok {
		t.Errorf("unexpected event %T", msg.Event)
	}

	close(ch)
	if msg := waitForServiceEventCmd(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}

func TestRefreshAndExport(t *testing.T) {
	if _, ok := Refresh()().(RefreshMsg); !ok {
		t.Error("Refresh should produce RefreshMsg")
	}
	if _, ok := Export()().(ExportMsg); !ok {
		t.Error("Export should produce ExportMsg")
	}
}

func TestClearNotificationCmd(t *testing.T) {
	if clearNotificationCmd("id", time.Millisecond) == nil {
		t.Error("clearNotificationCmd returned nil")
	}
}
