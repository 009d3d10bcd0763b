package transcriber

import "context"

// Transcriber wraps the speech-recognition collaborator.
type Transcriber interface {
	// CheckAvailable verifies the whisper binary and model file resolve.
	CheckAvailable(ctx context.Context) error
	// Transcribe returns the spoken text of the audio file.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
