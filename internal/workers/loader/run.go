package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type RunOptions struct {
	// Schedule is a standard five-field cron spec; empty disables it.
	Schedule string
	// WatchDir reloads when a .json file in it changes; empty disables it.
	WatchDir string
	// Debounce groups bursts of file events into one reload.
	Debounce time.Duration
}

// Run loads once, then serves refreshes from the schedule, the directory
// watcher and Trigger until ctx is done.
func (l *Loader) Run(ctx context.Context, opts RunOptions) error {
	if opts.Schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(opts.Schedule, l.Trigger); err != nil {
			return fmt.Errorf("refresh schedule %q: %w", opts.Schedule, err)
		}
		c.Start()
		defer c.Stop()
		l.log.Info("refresh schedule active", zap.String("schedule", opts.Schedule))
	}
	if opts.WatchDir != "" {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch %s: %w", opts.WatchDir, err)
		}
		defer w.Close()
		if err := w.Add(opts.WatchDir); err != nil {
			return fmt.Errorf("watch %s: %w", opts.WatchDir, err)
		}
		debounce := opts.Debounce
		if debounce <= 0 {
			debounce = 500 * time.Millisecond
		}
		go l.watch(ctx, w, debounce)
		l.log.Info("watching feed directory", zap.String("dir", opts.WatchDir))
	}

	l.LoadAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.requests:
			l.LoadAll(ctx)
		}
	}
}

func (l *Loader) watch(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".json") || ev.Op == fsnotify.Chmod {
				continue
			}
			l.log.Debug("feed file changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, l.Trigger)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.log.Warn("feed watcher error", zap.Error(err))
		}
	}
}
