// Package watch reports changes to local dataset files using fsnotify.
package watch

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DatasetWatcher = (*Watcher)(nil)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches dataset files for writes.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by rename keep being observed.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher. A non-positive debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled, calling onChange with the original
// path of each file that changed. Remote URLs are ignored; if nothing is
// left to watch Watch returns immediately.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	targets := make(map[string]string)
	dirs := make(map[string]struct{})
	for _, p := range paths {
		local, ok := localPath(p)
		if !ok {
			continue
		}
		abs, err := filepath.Abs(local)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		targets[abs] = p
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	if len(targets) == 0 {
		logger.Debug("Nothing to watch")
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("Watching %s", dir)
	}

	tick := w.debounce / 4
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if original, ok := targets[filepath.Clean(event.Name)]; ok {
				pending[original] = time.Now().Add(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, due := range pending {
				if now.Before(due) {
					continue
				}
				delete(pending, path)
				logger.Debug("Dataset changed: %s", path)
				onChange(path)
			}
		}
	}
}

// localPath returns the filesystem path of p, or false for remote URLs.
func localPath(p string) (string, bool) {
	u, err := url.Parse(p)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "":
		return p, true
	case "file":
		return u.Path, true
	default:
		return "", false
	}
}
