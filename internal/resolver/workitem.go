package resolver

// Status is the lifecycle stage of a work item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSkipped    Status = "skipped"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// WorkItem is one input file to be turned into one transcript.
type WorkItem struct {
	// Source is the reference as given by the user: a path or a URL.
	Source string
	// LocalPath is the resolved media file on disk. For URL sources this
	// is the downloaded temp file.
	LocalPath string
	// OutputPath is where the corrected transcript is written.
	OutputPath string
	Status     Status
}

// Terminal reports whether the item reached a final state.
func (w *WorkItem) Terminal() bool {
	switch w.Status {
	case StatusSkipped, StatusDone, StatusFailed:
		return true
	}
	return false
}
