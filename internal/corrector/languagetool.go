package corrector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"resty.dev/v3"

	"audiowise/internal/logger"
)

// checkResponse is the subset of the LanguageTool /v2/check payload we use.
type checkResponse struct {
	Matches []ltMatch `json:"matches"`
}

type ltMatch struct {
	Offset       int             `json:"offset"`
	Length       int             `json:"length"`
	Replacements []ltReplacement `json:"replacements"`
}

type ltReplacement struct {
	Value string `json:"value"`
}

type implLanguageTool struct {
	client *resty.Client
	logger logger.Logger
}

// newLanguageTool creates a corrector backed by a LanguageTool server.
func newLanguageTool(baseURL string, log logger.Logger) Corrector {
	client := resty.New()
	client.SetBaseURL(baseURL)

	return &implLanguageTool{
		client: client,
		logger: log,
	}
}

func (c *implLanguageTool) Correct(ctx context.Context, text, language string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var result checkResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"text":     text,
			"language": language,
		}).
		SetResult(&result).
		Post("/v2/check")
	if err != nil {
		return "", fmt.Errorf("languagetool request: %w", err)
	}

	if resp.StatusCode() == 400 && strings.Contains(resp.String(), "language") {
		return "", fmt.Errorf("%w: %s: %s", ErrUnsupportedLanguage, language, strings.TrimSpace(resp.String()))
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("languagetool check failed: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	c.logger.Debug(ctx, "LanguageTool found %d matches", len(result.Matches))
	return applyMatches(text, result.Matches), nil
}

// applyMatches rewrites the text with each match's first replacement.
// Matches are applied right to left so earlier offsets stay valid.
// LanguageTool reports offset and length in UTF-16 code units, so the
// text is edited in that encoding; characters outside the BMP occupy
// two units.
func applyMatches(text string, matches []ltMatch) string {
	if len(matches) == 0 {
		return text
	}

	sorted := make([]ltMatch, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	units := utf16.Encode([]rune(text))
	for _, m := range sorted {
		if len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Offset+m.Length > len(units) {
			continue
		}
		replacement := utf16.Encode([]rune(m.Replacements[0].Value))
		units = append(units[:m.Offset], append(replacement, units[m.Offset+m.Length:]...)...)
	}
	return string(utf16.Decode(units))
}
