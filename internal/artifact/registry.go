// Package artifact tracks temporary files produced mid-pipeline so a
// single cleanup call can release them on any exit path.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Registry owns the set of live temp files. Stages register files as they
// create them and release them when done; ReleaseAll sweeps whatever is
// left at process exit.
type Registry struct {
	mu    sync.Mutex
	dir   string
	paths map[string]struct{}
}

// NewRegistry creates the temp directory if needed and returns an empty
// registry rooted there.
func NewRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create temp directory %s: %w", dir, err)
	}
	return &Registry{
		dir:   dir,
		paths: make(map[string]struct{}),
	}, nil
}

// Dir returns the temp directory root.
func (r *Registry) Dir() string {
	return r.dir
}

// NewPath reserves and registers a unique temp file path. The file itself
// is created by whichever stage uses the path.
func (r *Registry) NewPath(prefix, ext string) string {
	path := filepath.Join(r.dir, fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext))
	r.Register(path)
	return path
}

// Register adds an externally created file to the registry.
func (r *Registry) Register(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths[path] = struct{}{}
}

// Release deletes one temp file and forgets it. Missing files are not an
// error: a stage may have failed before creating the file.
func (r *Registry) Release(path string) error {
	r.mu.Lock()
	delete(r.paths, path)
	r.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temp file %s: %w", path, err)
	}
	return nil
}

// ReleaseAll deletes every registered temp file and returns how many
// entries were swept. Safe to call multiple times.
func (r *Registry) ReleaseAll() int {
	r.mu.Lock()
	paths := make([]string, 0, len(r.paths))
	for p := range r.paths {
		paths = append(paths, p)
	}
	r.paths = make(map[string]struct{})
	r.mu.Unlock()

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			continue
		}
	}
	return len(paths)
}

// Active returns the number of currently registered temp files.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}
