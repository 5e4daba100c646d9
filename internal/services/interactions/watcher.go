package interactions

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/interaction-sector-viewer/internal/logger"
)

const debounceInterval = 150 * time.Millisecond

// Watcher reports changes to a file source so the view can fetch again.
type Watcher struct {
	mu            sync.Mutex
	watcher       *fsnotify.Watcher
	filePath      string
	changes       chan struct{}
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// Watch starts watching path. Changes are coalesced and delivered on
// Changes().
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are seen too
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher:  fw,
		filePath: path,
		changes:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Changes delivers one value per debounced burst of writes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("file watcher error", "path", w.filePath, "error", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceInterval, func() {
		select {
		case w.changes <- struct{}{}:
		default:
			// a change is already pending
		}
	})
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
