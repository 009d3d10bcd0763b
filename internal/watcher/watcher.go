package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"audiowise/internal/logger"
	"audiowise/internal/resolver"
)

// settleDelay gives the producer time to finish writing the file before
// the pipeline reads it.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inputDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start blocks, handling newly created media files one at a time until
// the context is cancelled. Items are processed sequentially on this
// goroutine; an item's failure is logged and the watch continues.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching for new media files in %s", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !resolver.IsMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New media file detected: %s", event.Name)
			time.Sleep(settleDelay)

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
