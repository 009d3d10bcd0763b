package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	stdout, _, err := e.ExecuteCapture(ctx, name, args...)
	return stdout, err
}

func (e *implExecutor) ExecuteCapture(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in the error for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return stdout.String(), stderr.String(), fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return stdout.String(), stderr.String(), fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), stderr.String(), nil
}

func (e *implExecutor) Look(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("binary %q not found on PATH: %w", name, err)
	}
	return nil
}
