// Package resolver turns an input reference (file, directory, or URL)
// into the ordered list of work items the batch controller processes.
package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"audiowise/internal/artifact"
	"audiowise/internal/logger"
)

type implResolver struct {
	registry *artifact.Registry
	logger   logger.Logger
	// outputExt is the transcript extension derived output paths get
	// (".txt" or ".docx").
	outputExt string
}

// New creates a Resolver. Downloaded URL inputs are registered with the
// given registry so they are cleaned up like any other temp artifact.
func New(reg *artifact.Registry, log logger.Logger, outputExt string) Resolver {
	return &implResolver{
		registry:  reg,
		logger:    log,
		outputExt: outputExt,
	}
}

func (r *implResolver) Resolve(ctx context.Context, input, output string) ([]*WorkItem, error) {
	if isURL(input) {
		return r.resolveURL(ctx, input, output)
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}

	if info.IsDir() {
		return r.resolveDirectory(ctx, input, output)
	}
	return r.resolveFile(input, input, output)
}

// resolveFile produces a single work item. When output points at an
// existing directory, the transcript name is derived from the input base.
func (r *implResolver) resolveFile(source, localPath, output string) ([]*WorkItem, error) {
	outputPath := output
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		outputPath = filepath.Join(output, r.transcriptName(localPath))
	}

	return []*WorkItem{{
		Source:     source,
		LocalPath:  localPath,
		OutputPath: outputPath,
		Status:     StatusPending,
	}}, nil
}

// resolveDirectory lists media files non-recursively, one item per file,
// sorted lexicographically for reproducible runs.
func (r *implResolver) resolveDirectory(ctx context.Context, inputDir, outputDir string) ([]*WorkItem, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputDir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsMediaFile(entry.Name()) {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMediaFound, inputDir)
	}
	sort.Strings(files)

	r.logger.Info(ctx, "Found %d media files in %s", len(files), inputDir)

	items := make([]*WorkItem, 0, len(files))
	for _, f := range files {
		items = append(items, &WorkItem{
			Source:     f,
			LocalPath:  f,
			OutputPath: filepath.Join(outputDir, r.transcriptName(f)),
			Status:     StatusPending,
		})
	}
	return items, nil
}

// resolveURL downloads the remote media to a temp artifact first, then
// treats it as a single file input.
func (r *implResolver) resolveURL(ctx context.Context, url, output string) ([]*WorkItem, error) {
	ext := filepath.Ext(strings.SplitN(filepath.Base(url), "?", 2)[0])
	if !mediaExtensions[strings.ToLower(ext)] {
		ext = ".mp4"
	}
	localPath := r.registry.NewPath("video", ext)

	r.logger.Info(ctx, "Downloading video from URL: %s", url)
	if err := download(ctx, url, localPath); err != nil {
		r.registry.Release(localPath)
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, url, err)
	}
	r.logger.Info(ctx, "Download complete: %s", localPath)

	// When output is a directory, derive the transcript name from the
	// URL, not the opaque temp file.
	outputPath := output
	if info, statErr := os.Stat(output); statErr == nil && info.IsDir() {
		base := strings.SplitN(filepath.Base(url), "?", 2)[0]
		outputPath = filepath.Join(output, strings.TrimSuffix(base, filepath.Ext(base))+r.outputExt)
	}

	return []*WorkItem{{
		Source:     url,
		LocalPath:  localPath,
		OutputPath: outputPath,
		Status:     StatusPending,
	}}, nil
}

func (r *implResolver) transcriptName(mediaPath string) string {
	base := filepath.Base(mediaPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + r.outputExt
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
