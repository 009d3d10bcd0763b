package transcriber

import (
	"audiowise/internal/artifact"
	"audiowise/internal/config"
	"audiowise/internal/logger"
	"audiowise/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	model    ModelSize
	registry *artifact.Registry
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber using the whisper.cpp CLI with the given
// model size. The whisper text output is a temp file; it is tracked in
// the registry so an aborted run cannot leave it behind.
func New(cfg config.WhisperConfig, model ModelSize, reg *artifact.Registry, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		model:    model,
		registry: reg,
		executor: exec,
		logger:   log,
	}
}
