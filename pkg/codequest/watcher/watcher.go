// Package watcher rebuilds topic projections when manifest files are edited
// outside the store.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/garunski/codequest/pkg/codequest/index"
	"github.com/garunski/codequest/pkg/codequest/manifest"
)

// DefaultDebounce collapses the burst of events an editor produces on save.
const DefaultDebounce = 250 * time.Millisecond

type Reloader interface {
	TopicCount() int
	Reload(topic int) ([]index.Entry, error)
}

type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	dir      string
	reloader Reloader
	logger   logr.Logger
	debounce time.Duration
	pending  map[int]time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	reloads  int
}

func New(dir string, reloader Reloader, logger logr.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		reloader: reloader,
		logger:   logger.WithName("watcher"),
		debounce: DefaultDebounce,
		pending:  make(map[int]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start begins watching the manifest directory, creating it if needed.
// It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create manifest directory %s: %w", w.dir, err)
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("Watching manifest directory", "dir", w.dir)

	// running is only set once the loop exists to close doneCh.
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.fsw.Close()
}

// Reloads returns how many topic reloads the watcher has triggered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Error(err, "watcher error")
				continue
			}
			// events were dropped; every topic may be stale
			w.logger.Info("Event queue overflowed, scheduling full reload")
			w.scheduleAll()
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	topic, ok := manifest.ParseFileName(event.Name)
	if !ok || topic >= w.reloader.TopicCount() {
		return
	}

	w.logger.V(1).Info("Manifest changed", "topic", topic, "op", event.Op.String())
	w.mu.Lock()
	w.pending[topic] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) scheduleAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	for topic := 0; topic < w.reloader.TopicCount(); topic++ {
		w.pending[topic] = now
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	var due []int
	for topic, seen := range w.pending {
		if time.Since(seen) >= w.debounce {
			due = append(due, topic)
			delete(w.pending, topic)
		}
	}
	w.mu.Unlock()

	for _, topic := range due {
		entries, err := w.reloader.Reload(topic)
		if err != nil {
			w.logger.Error(err, "failed to reload topic", "topic", topic)
			continue
		}
		w.logger.Info("Reloaded topic after manifest change", "topic", topic, "images", len(entries))
		w.mu.Lock()
		w.reloads++
		w.mu.Unlock()
	}
}
