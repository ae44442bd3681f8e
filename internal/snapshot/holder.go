package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marcus/sitegate/internal/config"
	"github.com/marcus/sitegate/internal/metrics"
)

// DefaultDebounce is how long Watch waits after the last file event before
// reloading.
const DefaultDebounce = 250 * time.Millisecond

// Holder owns the current snapshot. Readers call Current; Reload swaps in a
// new snapshot only when it builds cleanly.
type Holder struct {
	opts     Options
	logger   *slog.Logger
	current  atomic.Pointer[Snapshot]
	debounce time.Duration
}

// NewHolder loads the initial snapshot.
func NewHolder(opts Options) (*Holder, error) {
	s, err := Load(opts)
	if err != nil {
		return nil, err
	}
	h := &Holder{opts: opts, logger: opts.logger(), debounce: DefaultDebounce}
	h.current.Store(s)
	metrics.RecordReload(true, float64(s.LoadedAt.Unix()))
	return h, nil
}

// SetDebounce changes the watch debounce. Call before Watch.
func (h *Holder) SetDebounce(d time.Duration) {
	if d > 0 {
		h.debounce = d
	}
}

// Current returns the active snapshot.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Reload rebuilds the snapshot. On failure the previous snapshot stays active
// and the error is returned.
func (h *Holder) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := Load(h.opts)
	if err != nil {
		metrics.RecordReload(false, 0)
		h.logger.Error("snapshot reload failed, keeping previous", "err", err)
		return fmt.Errorf("reload snapshot: %w", err)
	}
	h.current.Store(s)
	metrics.RecordReload(true, float64(s.LoadedAt.Unix()))
	h.logger.Info("snapshot reloaded", "overrides", len(s.Overrides), "generated", s.GeneratedPath)
	return nil
}

// watchSet tracks the files that trigger a reload and the directories
// watched to see them.
type watchSet struct {
	w       *fsnotify.Watcher
	logger  *slog.Logger
	targets map[string]bool
	dirs    map[string]bool
}

// add watches f's parent directory, or the grandparent while the parent does
// not exist yet.
func (ws *watchSet) add(f string) error {
	abs, err := filepath.Abs(f)
	if err != nil {
		return err
	}
	if ws.targets[abs] {
		return nil
	}
	ws.targets[abs] = true

	dir := filepath.Dir(abs)
	if ws.dirs[dir] {
		return nil
	}
	ws.dirs[dir] = true
	if _, err := os.Stat(dir); err != nil {
		dir = filepath.Dir(dir)
	}
	if err := ws.w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	ws.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Watch reloads on changes to the project or generated config until ctx is
// done. Parent directories are watched so atomic renames are seen. When a
// reload moves the generated config, the new file is watched too.
func (h *Holder) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	ws := &watchSet{w: w, logger: h.logger, targets: map[string]bool{}, dirs: map[string]bool{}}
	for _, f := range []string{config.Path(h.opts.Dir), h.Current().GeneratedPath} {
		if err := ws.add(f); err != nil {
			return err
		}
	}

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

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && ws.dirs[ev.Name] {
				if err := w.Add(ev.Name); err != nil {
					h.logger.Warn("watch new directory failed", "dir", ev.Name, "err", err)
				}
				continue
			}
			if !ws.targets[ev.Name] || ev.Has(fsnotify.Chmod) {
				continue
			}
			h.logger.Debug("config file changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(h.debounce)
			} else {
				timer.Reset(h.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			// Reload logs and keeps the old snapshot on failure.
			if err := h.Reload(ctx); err != nil {
				continue
			}
			if err := ws.add(h.Current().GeneratedPath); err != nil {
				h.logger.Warn("watch generated config failed", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			h.logger.Error("config watcher error", "err", err)
		}
	}
}
