package corrector

import (
	"fmt"

	"audiowise/internal/config"
	"audiowise/internal/logger"
)

// New creates the configured correction backend.
func New(cfg config.CorrectionConfig, log logger.Logger) (Corrector, error) {
	switch cfg.Provider {
	case "languagetool":
		return newLanguageTool(cfg.LanguageToolURL, log), nil
	case "gemini":
		return newGemini(cfg.GeminiModel, cfg.GeminiAPIKeys, log), nil
	}
	return nil, fmt.Errorf("unknown correction provider %q", cfg.Provider)
}
