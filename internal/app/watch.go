package app

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"lifeview/internal/logging"
)

// Watch re-reads the config file at path whenever it changes and sends the
// result, decoded over base, on the returned channel. Invalid files are
// logged and skipped. The channel is closed when ctx is done.
//
// The parent directory is watched rather than the file itself so editors
// that save by rename keep triggering reloads.
func Watch(ctx context.Context, path string, base Config, log *slog.Logger) (<-chan Config, error) {
	log = logging.OrNop(log)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg := base
				cfg.Options = maps.Clone(base.Options)
				if err := cfg.ReadFile(abs); err != nil {
					log.Warn("config reload failed", "path", abs, "err", err)
					continue
				}
				if err := cfg.Validate(); err != nil {
					log.Warn("config reload rejected", "path", abs, "err", err)
					continue
				}
				log.Info("config reloaded", "path", abs)
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher", "err", err)
			}
		}
	}()
	return out, nil
}
