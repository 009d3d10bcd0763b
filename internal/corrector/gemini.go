package corrector

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"audiowise/internal/logger"
)

const correctionPrompt = `You are a grammar correction engine. Rewrite the transcript below in language %s, fixing grammar, punctuation and casing only. Do not translate, summarize, or add commentary. Return only the corrected text.

Transcript:
---
%s
---`

type implGemini struct {
	model      string
	apiKeys    []string
	currentKey int
	logger     logger.Logger
}

// newGemini creates a corrector backed by the Gemini API.
func newGemini(model string, apiKeys []string, log logger.Logger) Corrector {
	return &implGemini{
		model:   model,
		apiKeys: apiKeys,
		logger:  log,
	}
}

// Correct sends the transcript to Gemini. Rotates API keys on 429 / quota
// errors.
func (c *implGemini) Correct(ctx context.Context, text, language string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	prompt := fmt.Sprintf(correctionPrompt, language, text)

	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		key := c.apiKeys[c.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", c.currentKey+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			if strings.Contains(errMsg, "language") && strings.Contains(errMsg, "INVALID_ARGUMENT") {
				return "", fmt.Errorf("%w: %s: %v", ErrUnsupportedLanguage, language, err)
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var out string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					out += part.Text
				}
			}
			return strings.TrimSpace(out), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implGemini) rotateKey() {
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}
