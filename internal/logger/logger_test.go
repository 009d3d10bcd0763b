package logger

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "unknown", ""}
	for _, level := range levels {
		t.Run("level_"+level, func(t *testing.T) {
			log := New(level, "text")
			if log == nil {
				t.Fatal("New() returned nil")
			}
			// Must not panic at any level.
			ctx := context.Background()
			log.Debug(ctx, "debug %s", "message")
			log.Info(ctx, "info %s", "message")
			log.Warn(ctx, "warn %s", "message")
			log.Error(ctx, "error %s", "message")
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	log := New("info", "json")
	if log == nil {
		t.Fatal("New() returned nil")
	}
	log.Info(context.Background(), "structured %d", 1)
}
