package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (t *implTranscriber) CheckAvailable(ctx context.Context) error {
	if err := t.executor.Look(t.cfg.BinaryPath); err != nil {
		return err
	}
	modelPath := t.modelPath()
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("whisper model file %s: %w", modelPath, err)
	}
	return nil
}

// Transcribe runs the whisper CLI against one audio file (or segment) and
// returns the recognized text.
// -m: model file
// -f: input audio
// -otxt / --output-file: plain-text transcript at <prefix>.txt
// -l: spoken language hint ("auto" lets the model detect)
// -t: threads
// -np: suppress progress prints
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Debug(ctx, "Transcribing with model %s: %s", t.model, audioPath)

	// whisper may write a partial transcript and still exit non-zero, so
	// the output file is registered before the binary runs.
	txtPath := outputPrefix + ".txt"
	t.registry.Register(txtPath)
	defer func() {
		if err := t.registry.Release(txtPath); err != nil {
			t.logger.Warn(ctx, "Failed to release whisper output %s: %v", txtPath, err)
		}
	}()

	args := []string{
		"-m", t.modelPath(),
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-np",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (t *implTranscriber) modelPath() string {
	return filepath.Join(t.cfg.ModelDir, t.model.FileName())
}
