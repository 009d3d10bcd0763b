package corrector

import (
	"context"
	"errors"
)

// Corrector wraps the grammar-correction collaborator.
type Corrector interface {
	// Correct returns the text with grammar fixes applied for the given
	// language tag. Empty input returns empty output without a backend
	// call.
	Correct(ctx context.Context, text, language string) (string, error)
}

// ErrUnsupportedLanguage is wrapped when the backend rejects the language
// tag. The tag itself is free-form; only the backend validates it.
var ErrUnsupportedLanguage = errors.New("unsupported correction language")
