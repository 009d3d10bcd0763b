package executor

import "context"

// Executor defines the interface for invoking external engine binaries
type Executor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteCapture runs a command and returns stdout and stderr
	// separately. Needed for tools like ffmpeg that report on stderr.
	ExecuteCapture(ctx context.Context, name string, args ...string) (string, string, error)
	// Look reports whether the named binary is resolvable on PATH.
	Look(name string) error
}
