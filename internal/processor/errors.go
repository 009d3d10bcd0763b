package processor

import "fmt"

// Stage names used in per-item failure reports.
const (
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageCorrect    = "correct"
	StageWrite      = "write"
)

// StageError identifies which pipeline stage failed for which file.
type StageError struct {
	Stage string
	File  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed for %s: %v", e.Stage, e.File, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
