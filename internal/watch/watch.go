// Package watch re-runs a function whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is how long a file must stay quiet before fn runs, so that a
// burst of writes triggers one call.
const DefaultDelay = 200 * time.Millisecond

// Run calls fn after each change to path until ctx is done. The directory is
// watched rather than the file, so editors that replace the file are seen.
// Errors from fn are logged and do not stop the watch.
func Run(ctx context.Context, path string, delay time.Duration, log zerolog.Logger, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("file watcher %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("file watcher add %s: %w", path, err)
	}

	timer := time.NewTimer(delay)
	timer.Stop()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug().Str("file", path).Str("op", ev.Op.String()).Msg("File changed")
				timer.Reset(delay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("file", path).Msg("File watcher error")
		case <-timer.C:
			if err := fn(); err != nil {
				log.Error().Err(err).Str("file", path).Msg("Reload failed")
			}
		case <-ctx.Done():
			return nil
		}
	}
}
