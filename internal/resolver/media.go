package resolver

import (
	"path/filepath"
	"strings"
)

// Recognized media container extensions (lowercase, with leading dot).
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".flv":  true,
	".wmv":  true,
	".ts":   true,
	".webm": true,
	".m4v":  true,
}

// IsMediaFile reports whether the path has a recognized media extension.
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}
