package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports model files created or modified below a folder once they
// stayed unchanged for the debounce window.
type Watcher struct {
	root     string
	filter   *Filter
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher watches root for model files, skipping the default excluded
// folders and the ones named in exclude. logger may be nil.
func NewWatcher(root string, debounce time.Duration, logger *zap.Logger, exclude ...string) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		root: root,
		filter: NewFilter(FilterOptions{
			ExcludeDirs:       append(DefaultExcludeDirs(), exclude...),
			IncludeExtensions: ModelExtensions,
		}),
		debounce: debounce,
		logger:   logger,
	}
}

// Watch blocks until ctx is done, calling fn with the path of every model
// file that settled. Folders created while watching are watched too.
func (w *Watcher) Watch(ctx context.Context, fn func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root, nil); err != nil {
		return err
	}
	w.logger.Info("Watching", zap.String("folder", w.root))

	pending := make(map[string]time.Time)
	tick := time.NewTicker(max(w.debounce/4, 10*time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, ev, pending)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case now := <-tick.C:
			for _, path := range settled(pending, now, w.debounce) {
				fn(path)
			}
		}
	}
}

func (w *Watcher) handle(fw *fsnotify.Watcher, ev fsnotify.Event, pending map[string]time.Time) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(fw, ev.Name, pending); err != nil {
				w.logger.Warn("cannot watch folder", zap.String("folder", ev.Name), zap.Error(err))
			}
			return
		}
	}
	if !w.filter.Match(rel) {
		return
	}
	w.logger.Debug("model changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
	pending[ev.Name] = time.Now()
}

// addTree watches dir and its folders that are not excluded. Model files
// already present are added to pending unless pending is nil.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string, pending map[string]time.Time) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if rel, err := filepath.Rel(w.root, path); err == nil && pending != nil && w.filter.Match(filepath.ToSlash(rel)) {
				pending[path] = time.Now()
			}
			return nil
		}
		if path != w.root {
			if _, skip := w.filter.exclude[d.Name()]; skip {
				return filepath.SkipDir
			}
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// settled removes and returns, sorted, the pending paths untouched for at
// least window.
func settled(pending map[string]time.Time, now time.Time, window time.Duration) []string {
	var ready []string
	for path, at := range pending {
		if now.Sub(at) >= window {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}
