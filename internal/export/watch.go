package export

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher runs a rebuild whenever files under a directory tree change.
// Bursts of events within the debounce window trigger a single rebuild and
// rebuilds never overlap.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	rebuild  func(context.Context) error
	log      *slog.Logger
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root string, debounce time.Duration, rebuild func(context.Context) error, log *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		root:     root,
		debounce: debounce,
		rebuild:  rebuild,
		log:      log.With("root", root),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree adds dir and its subdirectories to the watch list. fsnotify does
// not watch recursively.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled. Rebuild errors are logged and
// do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	w.log.Info("watching for changes", "debounce_ms", w.debounce.Milliseconds())

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.log.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					w.log.Warn("failed to watch new directory", "dir", event.Name, "error", err)
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", "error", err)

		case <-timer.C:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				w.log.Error("rebuild failed", "error", err)
				continue
			}
			w.log.Info("rebuilt", "duration_ms", time.Since(start).Milliseconds())
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
