package moderation

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const RulesWatcherActor = "rules-file-watcher"

// RulesWatcher reloads the rule table when the rules file changes on disk.
type RulesWatcher struct {
	logger   *logrus.Logger
	reloader RulesReloader
	path     string
	debounce time.Duration
}

func NewRulesWatcher(logger *logrus.Logger, reloader RulesReloader, path string, debounce time.Duration) *RulesWatcher {
	return &RulesWatcher{
		logger:   logger,
		reloader: reloader,
		path:     filepath.Clean(path),
		debounce: debounce,
	}
}

// Watch blocks until ctx is done. The parent directory is watched so files
// replaced by rename are still picked up.
func (w *RulesWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create rules watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.logger.WithField("path", w.path).Info("watching moderation rules file")

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			if _, err := w.reloader.Reload(ctx, RulesWatcherActor); err != nil {
				w.logger.WithError(err).Warn("rules file change rejected, keeping active table")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("rules watcher error")
		}
	}
}
