package extractor

import (
	"audiowise/internal/config"
	"audiowise/internal/logger"
	"audiowise/pkg/executor"
)

type implExtractor struct {
	cfg      config.FFmpegConfig
	chunking config.ChunkingConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Extractor backed by the configured ffmpeg binaries.
func New(cfg config.FFmpegConfig, chunking config.ChunkingConfig, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		cfg:      cfg,
		chunking: chunking,
		executor: exec,
		logger:   log,
	}
}
