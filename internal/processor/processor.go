// Package processor is the batch controller: it drives each work item
// through extract, transcribe, correct and write, skipping items whose
// output already exists and isolating per-item failures.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audiowise/internal/extractor"
	"audiowise/internal/resolver"
)

func (p *implProcessor) Run(ctx context.Context, items []*resolver.WorkItem) Stats {
	stats := Stats{Total: len(items)}

	for i, item := range items {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Interrupted, %d of %d items not started", len(items)-i, len(items))
			break
		}

		p.logger.Info(ctx, "[%d/%d] %s", i+1, len(items), filepath.Base(item.LocalPath))
		if err := p.Process(ctx, item); err != nil {
			p.logger.Error(ctx, "Failed: %s: %v", filepath.Base(item.LocalPath), err)
		}

		switch item.Status {
		case resolver.StatusDone:
			stats.Done++
		case resolver.StatusSkipped:
			stats.Skipped++
		case resolver.StatusFailed:
			stats.Failed++
		}
	}

	p.logger.Info(ctx, "Summary: %d done, %d skipped, %d failed (%d total)",
		stats.Done, stats.Skipped, stats.Failed, stats.Total)
	return stats
}

// Process runs one item. The skip check happens lazily here, not when the
// batch was resolved, so each item is judged at the moment it would run.
func (p *implProcessor) Process(ctx context.Context, item *resolver.WorkItem) error {
	if outputExists(item.OutputPath) {
		item.Status = resolver.StatusSkipped
		p.logger.Warn(ctx, "Output already exists, skipping: %s", item.OutputPath)
		return nil
	}

	item.Status = resolver.StatusInProgress

	err := p.runStages(ctx, item)
	if err != nil {
		item.Status = resolver.StatusFailed
		return err
	}

	item.Status = resolver.StatusDone
	p.logger.Info(ctx, "Done: %s -> %s", filepath.Base(item.LocalPath), item.OutputPath)
	return nil
}

// runStages executes the fixed stage sequence. Temp artifacts created for
// this item are released before returning, on success and on failure.
func (p *implProcessor) runStages(ctx context.Context, item *resolver.WorkItem) error {
	var itemArtifacts []string
	defer func() {
		for _, path := range itemArtifacts {
			if err := p.registry.Release(path); err != nil {
				p.logger.Warn(ctx, "Failed to release temp file %s: %v", path, err)
			}
		}
	}()

	audioPath := p.registry.NewPath("audio", ".wav")
	itemArtifacts = append(itemArtifacts, audioPath)

	if err := p.extractor.Extract(ctx, item.LocalPath, audioPath); err != nil {
		return &StageError{Stage: StageExtract, File: item.LocalPath, Err: err}
	}

	transcript, err := p.transcribe(ctx, audioPath, &itemArtifacts)
	if err != nil {
		return &StageError{Stage: StageTranscribe, File: item.LocalPath, Err: err}
	}

	corrected, err := p.corrector.Correct(ctx, transcript, p.language)
	if err != nil {
		return &StageError{Stage: StageCorrect, File: item.LocalPath, Err: err}
	}

	title := strings.TrimSuffix(filepath.Base(item.LocalPath), filepath.Ext(item.LocalPath))
	if err := p.writer.Write(item.OutputPath, title, corrected); err != nil {
		return &StageError{Stage: StageWrite, File: item.LocalPath, Err: err}
	}

	return nil
}

// transcribe handles the whole-file case and the chunked case. Audio
// longer than the threshold is cut into segments transcribed one at a
// time, bounding peak memory independent of input length.
func (p *implProcessor) transcribe(ctx context.Context, audioPath string, itemArtifacts *[]string) (string, error) {
	duration, err := p.extractor.Duration(ctx, audioPath)
	if err != nil {
		return "", err
	}

	if duration <= p.chunking.ThresholdSeconds {
		return p.transcriber.Transcribe(ctx, audioPath)
	}

	p.logger.Info(ctx, "Audio is %.0fs, chunking into ~%.0fs segments", duration, p.chunking.SegmentSeconds)

	// Silence detection is best effort: fixed boundaries are an
	// acceptable fallback.
	silences, err := p.extractor.DetectSilence(ctx, audioPath)
	if err != nil {
		p.logger.Debug(ctx, "Silence detection unavailable, using fixed boundaries: %v", err)
		silences = nil
	}

	segments := extractor.PlanSegments(duration, p.chunking.SegmentSeconds, p.chunking.SilenceWindowSeconds, silences)

	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		segPath := p.registry.NewPath("segment", ".wav")
		*itemArtifacts = append(*itemArtifacts, segPath)

		if err := p.extractor.Cut(ctx, audioPath, segPath, seg.Start, seg.Duration); err != nil {
			return "", fmt.Errorf("segment %d/%d: %w", i+1, len(segments), err)
		}

		text, err := p.transcriber.Transcribe(ctx, segPath)
		if err != nil {
			return "", fmt.Errorf("segment %d/%d: %w", i+1, len(segments), err)
		}
		if text != "" {
			parts = append(parts, text)
		}

		// Segments are single-use; release eagerly to keep disk usage flat.
		if err := p.registry.Release(segPath); err == nil {
			*itemArtifacts = (*itemArtifacts)[:len(*itemArtifacts)-1]
		}

		p.logger.Debug(ctx, "Segment %d/%d transcribed", i+1, len(segments))
	}

	return strings.Join(parts, " "), nil
}

func outputExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
