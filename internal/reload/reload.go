// Package reload keeps the current dataset snapshot and replaces it when the
// dataset file changes on disk.
package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/matsen/confnet/internal/record"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Holder publishes the current dataset. Readers take a snapshot with Dataset
// and keep using it for the whole request even if a reload swaps it.
type Holder struct {
	current atomic.Pointer[record.Dataset]
}

// NewHolder returns a holder publishing ds.
func NewHolder(ds *record.Dataset) *Holder {
	h := &Holder{}
	h.current.Store(ds)
	return h
}

// Dataset returns the current snapshot.
func (h *Holder) Dataset() *record.Dataset {
	return h.current.Load()
}

// Swap publishes ds and returns the previous snapshot.
func (h *Holder) Swap(ds *record.Dataset) *record.Dataset {
	return h.current.Swap(ds)
}

// Watcher reloads a dataset file into a Holder.
type Watcher struct {
	path     string
	holder   *Holder
	logger   *zap.Logger
	debounce time.Duration
	onReload []func(*record.Dataset, error)
}

// NewWatcher creates a watcher for the dataset at path.
func NewWatcher(path string, holder *Holder, logger *zap.Logger) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		holder:   holder,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// OnReload registers fn to run after every reload attempt. fn receives the
// new dataset on success and the parse error on failure.
func (w *Watcher) OnReload(fn func(*record.Dataset, error)) {
	w.onReload = append(w.onReload, fn)
}

// SetDebounce overrides the debounce delay.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Reload parses the dataset file and publishes it. On error the current
// snapshot stays in place.
func (w *Watcher) Reload() error {
	ds, err := record.LoadDataset(w.path)
	if err != nil {
		w.logger.Warn("Dataset reload failed; keeping previous dataset",
			zap.String("path", w.path),
			zap.Error(err),
		)
	} else {
		w.holder.Swap(ds)
		w.logger.Info("Dataset reloaded",
			zap.String("path", w.path),
			zap.Int("records", ds.Len()),
		)
	}
	for _, fn := range w.onReload {
		fn(ds, err)
	}
	return err
}

// Run watches the dataset file until ctx is cancelled. The parent directory
// is watched so that editors which replace the file by rename are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("Watching dataset for changes", zap.String("path", w.path))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Dataset file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			_ = w.Reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", zap.Error(err))
		}
	}
}
