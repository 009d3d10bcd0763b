package watcher

import "context"

// Watcher monitors an input directory for newly created media files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly observed media file.
type EventHandler func(ctx context.Context, filePath string) error
