package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// DefaultSettle is how long the watcher waits for writes to stop before
// reloading.
const DefaultSettle = 150 * time.Millisecond

// Reload is the outcome of re-reading a watched catalog file. Exactly one
// of Catalog and Err is set.
type Reload struct {
	Catalog    *roadmap.Catalog
	Mismatches []NextStepsMismatch
	Downgrade  bool
	Err        error
}

// Watcher re-reads a catalog file whenever it changes on disk.
type Watcher struct {
	Path    string
	Current string // version of the catalog in use, for downgrade checks
	Settle  time.Duration
	Logger  *slog.Logger
}

// Start watches the file's directory, so editors that replace the file on
// save are seen too. The returned channel closes when ctx is done.
func (w *Watcher) Start(ctx context.Context) (<-chan Reload, error) {
	path, err := filepath.Abs(w.Path)
	if err != nil {
		return nil, fmt.Errorf("watch catalog: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch catalog: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch catalog: %w", err)
	}

	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}

	out := make(chan Reload, 1)
	go w.loop(ctx, fw, path, settle, logger, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, path string, settle time.Duration, logger *slog.Logger, out chan<- Reload) {
	defer close(out)
	defer fw.Close()

	current := w.Current
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("catalog watcher error", "path", path, "error", err)

		case <-timer.C:
			r := reload(path, current, logger)
			if r.Catalog != nil {
				current = r.Catalog.Version()
			}
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}

func reload(path, current string, logger *slog.Logger) Reload {
	res, err := LoadFile(path)
	if err != nil {
		logger.Error("catalog reload rejected", "path", path, "error", err)
		return Reload{Err: err}
	}
	logMismatches(logger, path, res.Mismatches)

	r := Reload{Catalog: res.Catalog, Mismatches: res.Mismatches}
	if IsDowngrade(current, res.Catalog.Version()) {
		r.Downgrade = true
		logger.Warn("catalog version downgrade",
			"path", path,
			"previous_version", current,
			"version", res.Catalog.Version(),
		)
	}
	logger.Info("catalog reloaded", "path", path, "version", res.Catalog.Version(), "milestones", res.Catalog.Len())
	return r
}
