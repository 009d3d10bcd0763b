package processor

import (
	"audiowise/internal/artifact"
	"audiowise/internal/config"
	"audiowise/internal/corrector"
	"audiowise/internal/docwriter"
	"audiowise/internal/extractor"
	"audiowise/internal/logger"
	"audiowise/internal/transcriber"
)

type implProcessor struct {
	chunking    config.ChunkingConfig
	language    string
	registry    *artifact.Registry
	extractor   extractor.Extractor
	transcriber transcriber.Transcriber
	corrector   corrector.Corrector
	writer      docwriter.Writer
	logger      logger.Logger
}

// New creates a Processor wired to the three engines and the temp-file
// registry.
func New(
	chunking config.ChunkingConfig,
	language string,
	reg *artifact.Registry,
	ext extractor.Extractor,
	tr transcriber.Transcriber,
	co corrector.Corrector,
	w docwriter.Writer,
	log logger.Logger,
) Processor {
	return &implProcessor{
		chunking:    chunking,
		language:    language,
		registry:    reg,
		extractor:   ext,
		transcriber: tr,
		corrector:   co,
		writer:      w,
		logger:      log,
	}
}
