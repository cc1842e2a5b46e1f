package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// IndexReplacer installs a rebuilt index. services.SnapshotStore implements it.
type IndexReplacer interface {
	Replace(index *recipe.Index, source string) *services.Snapshot
}

// ReloadFunc is notified after every reload attempt
type ReloadFunc func(snapshot *services.Snapshot, err error)

// Watcher reloads the catalog whenever a matching file under the loader's
// root changes. A failed reload keeps the previous snapshot.
type Watcher struct {
	loader   *Loader
	store    IndexReplacer
	debounce time.Duration
	onReload ReloadFunc

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher. A zero debounce waits 500ms after the last change.
func NewWatcher(loader *Loader, store IndexReplacer, debounce time.Duration, onReload ReloadFunc) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		loader:   loader,
		store:    store,
		debounce: debounce,
		onReload: onReload,
	}
}

// Run watches until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.loader.Root()); err != nil {
		return err
	}

	logger.Log("INFO", "Watching recipe catalog", map[string]interface{}{
		"dir":      w.loader.Root(),
		"patterns": w.loader.Patterns(),
	})

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log("ERROR", "Catalog watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// addTree watches dir and every directory below it; fsnotify is not recursive
func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addTree(watcher, event.Name)
			w.schedule(ctx)
			return
		}
	}

	rel, err := filepath.Rel(w.loader.Root(), event.Name)
	if err != nil || !w.loader.Matches(filepath.ToSlash(rel)) {
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.schedule(ctx)
}

// schedule (re)arms the debounce timer
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.Reload(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Reload loads the catalog now and installs it on success
func (w *Watcher) Reload(ctx context.Context) (*services.Snapshot, error) {
	logger := common.LoggerFromContext(ctx)

	result, err := w.loader.Load(ctx)
	if err != nil {
		logger.Log("ERROR", "Catalog reload failed, keeping previous recipes", map[string]interface{}{
			"dir":   w.loader.Root(),
			"error": err.Error(),
		})
		if w.onReload != nil {
			w.onReload(nil, err)
		}
		return nil, err
	}

	snapshot := w.store.Replace(result.Index(), w.loader.Root())
	logger.Log("INFO", "Recipe catalog reloaded", map[string]interface{}{
		"version": snapshot.Version,
		"files":   len(result.Files),
		"recipes": len(result.Recipes),
		"items":   snapshot.Index.Len(),
	})

	if w.onReload != nil {
		w.onReload(snapshot, nil)
	}
	return snapshot, nil
}
