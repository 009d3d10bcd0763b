package extractor

import "context"

// Extractor wraps the ffmpeg/ffprobe collaborators.
type Extractor interface {
	// CheckAvailable verifies the ffmpeg and ffprobe binaries resolve.
	CheckAvailable(ctx context.Context) error
	// Extract produces a mono 16-bit PCM WAV at audioPath from the media
	// file. Mono halves data volume and matches what the transcription
	// engine expects.
	Extract(ctx context.Context, mediaPath, audioPath string) error
	// Duration returns the audio length in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// DetectSilence returns silence gaps found in the audio.
	DetectSilence(ctx context.Context, audioPath string) ([]Silence, error)
	// Cut writes the [start, start+duration) slice of audioPath to segPath.
	Cut(ctx context.Context, audioPath, segPath string, start, duration float64) error
}

// Silence is one detected silence gap, in seconds from stream start.
type Silence struct {
	Start float64
	End   float64
}

// Mid returns the midpoint of the gap, the preferred cut position.
func (s Silence) Mid() float64 {
	return (s.Start + s.End) / 2
}
