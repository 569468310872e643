// Package watcher reports changes to a set of scene files.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the directories holding a set of files and reports
// changes to those files in debounced batches.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *slog.Logger

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a watcher that waits for debounce of quiet before
// reporting. A nil logger discards errors.
func New(debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		watcher:  fw,
		debounce: debounce,
		log:      log,
		files:    map[string]bool{},
		dirs:     map[string]bool{},
	}, nil
}

// Track replaces the watched file set.
func (w *Watcher) Track(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range paths {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", f, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	var added []string
	for d := range dirs {
		if w.dirs[d] {
			continue
		}
		if err := w.watcher.Add(d); err != nil {
			// leave the previous set untouched
			for _, a := range added {
				_ = w.watcher.Remove(a)
			}
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
		added = append(added, d)
	}
	for d := range w.dirs {
		if !dirs[d] {
			_ = w.watcher.Remove(d)
		}
	}
	w.files, w.dirs = files, dirs
	return nil
}

// Tracked returns the absolute paths currently watched, sorted.
func (w *Watcher) Tracked() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func (w *Watcher) tracked(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(name)]
}

// Run delivers batches of changed files to onChange until ctx is done or
// the watcher is closed. onChange runs on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	var (
		pending = map[string]bool{}
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.tracked(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			batch := make([]string, 0, len(pending))
			for f := range pending {
				batch = append(batch, f)
			}
			slices.Sort(batch)
			clear(pending)
			onChange(batch)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "err", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
