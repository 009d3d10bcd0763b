package docwriter

import (
	"fmt"
	"os"
	"path/filepath"
)

type implText struct{}

// NewText creates the plain-text transcript writer.
func NewText() Writer {
	return &implText{}
}

func (w *implText) Write(path, title, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

func (w *implText) Ext() string {
	return ".txt"
}
