package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigWatcher = (*ConfigStore)(nil)

// reloadDelay coalesces the bursts of events an editor produces when it
// saves the file.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the store whenever config.toml changes on disk and sends
// on the returned channel after each reload. The directory is watched
// rather than the file, since editors often replace the file on save.
// The channel is closed once ctx is done.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(s.filePath), err)
	}

	changes := make(chan struct{}, 1)
	notify := func() {
		if err := s.Load(); err != nil {
			logger.Warn("config: reloading %s: %v", s.filePath, err)
			return
		}
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	go func() {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("config: closing watcher: %v", err)
			}
			close(changes)
		}()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-pending:
				pending = nil
				notify()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config: watcher: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != s.filePath || !isContentChange(evt.Op) {
					continue
				}
				if pending == nil {
					pending = time.After(reloadDelay)
				}
			}
		}
	}()

	return changes, nil
}

// isContentChange reports whether op can change what Load reads.
// Removal counts: a deleted file resets every setting to its default.
func isContentChange(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
