package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func (e *implExtractor) CheckAvailable(ctx context.Context) error {
	if err := e.executor.Look(e.cfg.BinaryPath); err != nil {
		return err
	}
	return e.executor.Look(e.cfg.ProbePath)
}

// Extract converts the media file to a 16kHz mono WAV.
// -vn: drop video
// -ar: sample rate (16kHz is what whisper models are trained on)
// -ac 1: mono
// -c:a pcm_s16le: uncompressed 16-bit PCM
func (e *implExtractor) Extract(ctx context.Context, mediaPath, audioPath string) error {
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", strconv.Itoa(e.cfg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	e.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return nil
}

func (e *implExtractor) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := e.executor.Execute(ctx, e.cfg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return dur, nil
}

var (
	reSilenceStart = regexp.MustCompile(`silence_start:\s*([0-9.]+)`)
	reSilenceEnd   = regexp.MustCompile(`silence_end:\s*([0-9.]+)`)
)

// DetectSilence runs the silencedetect filter and parses its stderr report.
func (e *implExtractor) DetectSilence(ctx context.Context, audioPath string) ([]Silence, error) {
	filter := fmt.Sprintf("silencedetect=noise=%ddB:d=%s",
		e.chunking.SilenceNoiseDB,
		strconv.FormatFloat(e.chunking.SilenceMinSeconds, 'f', -1, 64))

	args := []string{
		"-i", audioPath,
		"-af", filter,
		"-f", "null",
		"-",
	}

	// ffmpeg prints filter output on stderr.
	_, stderr, err := e.executor.ExecuteCapture(ctx, e.cfg.BinaryPath, args...)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg silencedetect: %w", err)
	}

	return parseSilences(stderr), nil
}

func parseSilences(report string) []Silence {
	var silences []Silence
	var pendingStart *float64

	for _, line := range strings.Split(report, "\n") {
		if m := reSilenceStart.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				pendingStart = &v
			}
			continue
		}
		if m := reSilenceEnd.FindStringSubmatch(line); m != nil && pendingStart != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				silences = append(silences, Silence{Start: *pendingStart, End: v})
			}
			pendingStart = nil
		}
	}
	return silences
}

func (e *implExtractor) Cut(ctx context.Context, audioPath, segPath string, start, duration float64) error {
	args := []string{
		"-i", audioPath,
		"-ss", strconv.FormatFloat(start, 'f', 3, 64),
		"-t", strconv.FormatFloat(duration, 'f', 3, 64),
		"-c", "copy",
		"-y",
		segPath,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg cut segment at %.1fs: %w", start, err)
	}
	return nil
}
