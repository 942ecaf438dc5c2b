// Package watcher turns filesystem change notifications into debounced
// rebuild signals.
//
// Watch patterns are glob expressions expanded against the filesystem:
// matched directories are watched recursively, matched files contribute
// their parent directory. Event kinds and paths are not inspected further;
// any change anywhere in the watch set triggers a full rebuild, so only the
// recency of "something changed" is tracked. A rebuild signal fires once a
// quiet period has elapsed after the last event, collapsing bursts (editor
// "save all") into a single rebuild.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/druskus20/bageri/internal/logging"
)

const (
	// DefaultPollInterval is how often the debounce loop checks whether to fire.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultQuietPeriod is how long after the last event a rebuild fires.
	DefaultQuietPeriod = 500 * time.Millisecond
)

// Watcher owns the fsnotify subscription and the debounce state.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *logging.Logger

	// PollInterval and QuietPeriod may be lowered before Start in tests.
	PollInterval time.Duration
	QuietPeriod  time.Duration

	rebuilds chan struct{}

	mu        sync.Mutex
	lastEvent time.Time // zero means no pending event
}

// New creates a watcher for the given glob patterns. Patterns that match
// nothing and paths that cannot be watched are logged and skipped; they do
// not fail construction.
func New(patterns []string, logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fsw:          fsw,
		logger:       logger.WithComponent("watcher"),
		PollInterval: DefaultPollInterval,
		QuietPeriod:  DefaultQuietPeriod,
		rebuilds:     make(chan struct{}, 1),
	}

	for _, dir := range expandPatterns(patterns, w.logger) {
		w.addRecursive(dir)
	}
	return w, nil
}

// expandPatterns resolves globs to the set of directories to watch. Matched
// files are represented by their parent directory; duplicates are tolerated,
// the underlying watch set deduplicates.
func expandPatterns(patterns []string, log *logging.Logger) []string {
	var dirs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			log.Warn("invalid watch pattern, skipping", "pattern", pattern, "reason", err.Error())
			continue
		}
		if len(matches) == 0 {
			log.Warn("watch pattern matched nothing", "pattern", pattern)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				log.Warn("cannot stat watch path, skipping", "path", match, "reason", err.Error())
				continue
			}
			if info.IsDir() {
				dirs = append(dirs, match)
			} else {
				dirs = append(dirs, filepath.Dir(match))
			}
		}
	}
	return dirs
}

// addRecursive watches root and every directory below it. Unwatchable
// entries are logged and skipped; watching continues for the rest.
func (w *Watcher) addRecursive(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("cannot walk watch path", "path", path, "reason", err.Error())
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("cannot watch path", "path", path, "reason", err.Error())
			return nil
		}
		w.logger.Debug("watching path", "path", path)
		return nil
	})
	if err != nil {
		w.logger.Warn("watch setup incomplete", "root", root, "reason", err.Error())
	}
}

// Rebuilds returns the channel a rebuild signal is delivered on. The channel
// has capacity one; a signal arriving while a previous one is still pending
// coalesces with it.
func (w *Watcher) Rebuilds() <-chan struct{} {
	return w.rebuilds
}

// Start runs the event and debounce loops until ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	go w.eventLoop(ctx)
	go w.debounceLoop(ctx)
}

// Close stops notification delivery, which also ends the event loop.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// eventLoop records event arrival times. The specific operation and path are
// irrelevant at this layer; every change means "rebuild soon".
func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.logger.Trace("filesystem event", "op", event.Op.String(), "path", event.Name)
			// Directories created under a watched root must join the watch
			// set, or changes inside them would go unseen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(event.Name)
				}
			}
			w.mu.Lock()
			w.lastEvent = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; keep watching the remaining paths.
			w.logger.Warn("watch error", "reason", err.Error())
		}
	}
}

// debounceLoop polls the last-event timestamp and emits a single rebuild
// signal once the quiet period has elapsed.
func (w *Watcher) debounceLoop(ctx context.Context) {
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			fire := !w.lastEvent.IsZero() && time.Since(w.lastEvent) >= w.QuietPeriod
			if fire {
				w.lastEvent = time.Time{}
			}
			w.mu.Unlock()

			if fire {
				select {
				case w.rebuilds <- struct{}{}:
				default:
					// A rebuild is already pending; coalesce.
				}
			}
		}
	}
}
