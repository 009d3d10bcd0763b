package resolver

import "errors"

var (
	// ErrInputNotFound means the input path or URL did not resolve to
	// readable content. Fatal: no processing starts.
	ErrInputNotFound = errors.New("input not found")

	// ErrNoMediaFound means a directory input contained no recognized
	// media files. Fatal: no processing starts.
	ErrNoMediaFound = errors.New("no media files found")
)
