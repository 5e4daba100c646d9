package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/j-veylop/interaction-sector-viewer/internal/config"
	"github.com/j-veylop/interaction-sector-viewer/internal/services/interactions"
)

func newTestConfig(t *testing.T, source string) *config.Config {
	t.Helper()
	return &config.Config{
		SourceURL:      source,
		DatabasePath:   filepath.Join(t.TempDir(), "test.db"),
		FetchTimeout:   time.Second,
		HistoryEnabled: true,
	}
}

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewManager(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[]`)
	mgr, err := NewManager(newTestConfig(t, srv.URL))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if mgr.database == nil {
		t.Error("Database should be initialized")
	}
	if !mgr.HistoryEnabled() {
		t.Error("History should be enabled")
	}
	if mgr.Watching() {
		t.Error("HTTP sources are never watched")
	}
	if mgr.SourceName() != srv.URL {
		t.Errorf("SourceName = %q, want %q", mgr.SourceName(), srv.URL)
	}
}

func TestNewManager_HistoryDisabled(t *testing.T) {
	cfg := newTestConfig(t, "http://example.com")
	cfg.HistoryEnabled = false

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if mgr.database != nil {
		t.Error("Database should not be opened")
	}
	snaps, totals, err := mgr.History(context.Background(), 10)
	if err != nil || snaps != nil || totals != nil {
		t.Errorf("History() = %v, %v, %v; want nils", snaps, totals, err)
	}
}

func TestManager_FetchRecordsHistory(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[{"name":"A"},{"name":"B"},{"name":"A"}]`)
	mgr, err := NewManager(newTestConfig(t, srv.URL))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()

	records, err := mgr.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}

	select {
	case ev := <-ch:
		hu, ok := ev.(HistoryUpdatedEvent)
		if !ok {
			t.Fatalf("unexpected event %T", ev)
		}
		if hu.Snapshot.Total != 3 || len(hu.Snapshot.Sectors) != 2 {
			t.Errorf("unexpected snapshot %+v", hu.Snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("no history event")
	}

	snaps, totals, err := mgr.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(snaps) != 1 || !snaps[0].OK() {
		t.Fatalf("unexpected history %+v", snaps)
	}
	if snaps[0].Sectors[0].Label != "A" || snaps[0].Sectors[0].Count != 2 {
		t.Errorf("unexpected sectors %+v", snaps[0].Sectors)
	}
	if len(totals) != 1 || totals[0] != 3 {
		t.Errorf("totals = %v, want [3]", totals)
	}
}

func TestManager_SharedFetchRecordedOnce(t *testing.T) {
	release := make(chan struct{})
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		_, _ = io.WriteString(w, `[{"name":"A"}]`)
	}))
	t.Cleanup(srv.Close)

	mgr, err := NewManager(newTestConfig(t, srv.URL))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	const callers = 3
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := mgr.Fetch(context.Background()); err != nil {
				t.Errorf("Fetch failed: %v", err)
			}
		}()
	}

	// Let every caller join the in-flight request.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := requests.Load(); got != 1 {
		t.Fatalf("server saw %d requests, want 1", got)
	}
	snaps, _, err := mgr.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("got %d history rows, want 1", len(snaps))
	}
}

func TestManager_FetchFailureNotifies(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
	}{
		{name: "Network", status: http.StatusBadGateway, body: "bad", wantKind: interactions.ErrNetwork},
		{name: "Empty", status: http.StatusOK, body: "[]", wantKind: interactions.ErrEmptyData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body)
			cfg := newTestConfig(t, srv.URL)
			cfg.NotifyOnError = true

			mgr, err := NewManager(cfg)
			if err != nil {
				t.Fatalf("NewManager failed: %v", err)
			}
			defer mgr.Close()

			var mu sync.Mutex
			var notified []string
			mgr.SetNotifier(func(title, body string) error {
				mu.Lock()
				defer mu.Unlock()
				notified = append(notified, body)
				return nil
			})

			_, err = mgr.Fetch(context.Background())
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("error = %v, want %v", err, tt.wantKind)
			}

			mu.Lock()
			if len(notified) != 1 {
				t.Errorf("got %d notifications, want 1", len(notified))
			}
			mu.Unlock()

			snaps, totals, err := mgr.History(context.Background(), 10)
			if err != nil {
				t.Fatalf("History failed: %v", err)
			}
			if len(snaps) != 1 || snaps[0].OK() || snaps[0].Error == "" {
				t.Errorf("unexpected history %+v", snaps)
			}
			if len(totals) != 0 {
				t.Errorf("failed fetches must not appear in totals, got %v", totals)
			}
		})
	}
}

func TestManager_NoNotificationByDefault(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, "")
	mgr, err := NewManager(newTestConfig(t, srv.URL))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	called := false
	mgr.SetNotifier(func(string, string) error {
		called = true
		return nil
	})

	_, _ = mgr.Fetch(context.Background())
	if called {
		t.Error("notifier should not be called when NOTIFY_ON_ERROR is off")
	}
}

func TestManager_WatchesFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`[{"name":"A"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig(t, path)
	cfg.WatchSource = true
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if !mgr.Watching() {
		t.Fatal("file source should be watched")
	}

	ch, _ := mgr.Subscribe()
	if err := os.WriteFile(path, []byte(`[{"name":"B"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-ch:
		if _, ok := ev.(SourceChangedEvent); !ok {
			t.Errorf("unexpected event %T", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no source change event")
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr, err := NewManager(newTestConfig(t, "http://example.com"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, cmd := mgr.Subscribe()
	if cmd == nil {
		t.Fatal("Subscribe should return a command")
	}

	mgr.broadcast(ErrorEvent{Service: "test", Error: errors.New("boom")})
	msg := cmd()
	if ev, ok := msg.(ErrorEvent); !ok || ev.Service != "test" {
		t.Errorf("unexpected message %#v", msg)
	}

	if err := mgr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if msg := WaitForEvent(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %#v", msg)
	}
}

func TestManager_CloseTwice(t *testing.T) {
	mgr, err := NewManager(newTestConfig(t, "http://example.com"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
