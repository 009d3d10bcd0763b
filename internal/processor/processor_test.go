package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiowise/internal/artifact"
	"audiowise/internal/config"
	"audiowise/internal/docwriter"
	"audiowise/internal/extractor"
	"audiowise/internal/logger"
	"audiowise/internal/resolver"
)

// stubExtractor fakes ffmpeg: Extract writes a small file so cleanup has
// something real to delete.
type stubExtractor struct {
	extractCalls int
	duration     float64
	silences     []extractor.Silence
	extractErr   error
}

func (s *stubExtractor) CheckAvailable(ctx context.Context) error { return nil }

func (s *stubExtractor) Extract(ctx context.Context, mediaPath, audioPath string) error {
	s.extractCalls++
	if s.extractErr != nil {
		return s.extractErr
	}
	return os.WriteFile(audioPath, []byte("pcm"), 0644)
}

func (s *stubExtractor) Duration(ctx context.Context, path string) (float64, error) {
	if s.duration == 0 {
		return 60, nil
	}
	return s.duration, nil
}

func (s *stubExtractor) DetectSilence(ctx context.Context, audioPath string) ([]extractor.Silence, error) {
	return s.silences, nil
}

func (s *stubExtractor) Cut(ctx context.Context, audioPath, segPath string, start, dur float64) error {
	return os.WriteFile(segPath, []byte("seg"), 0644)
}

type stubTranscriber struct {
	calls int
	text  string
	err   error
}

func (s *stubTranscriber) CheckAvailable(ctx context.Context) error { return nil }

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type stubCorrector struct {
	calls    int
	lastLang string
	err      error
}

func (s *stubCorrector) Correct(ctx context.Context, text, language string) (string, error) {
	s.calls++
	s.lastLang = language
	if s.err != nil {
		return "", s.err
	}
	return strings.ToUpper(text), nil
}

type testRig struct {
	proc Processor
	reg  *artifact.Registry
	ext  *stubExtractor
	tr   *stubTranscriber
	co   *stubCorrector
}

func newRig(t *testing.T, ext *stubExtractor, tr *stubTranscriber, co *stubCorrector) *testRig {
	t.Helper()
	reg, err := artifact.NewRegistry(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	chunking := config.ChunkingConfig{
		ThresholdSeconds:     600,
		SegmentSeconds:       300,
		SilenceWindowSeconds: 15,
	}
	proc := New(chunking, "pt-BR", reg, ext, tr, co, docwriter.NewText(), logger.New("error", "text"))
	return &testRig{proc: proc, reg: reg, ext: ext, tr: tr, co: co}
}

func newItem(t *testing.T, outputDir, name string) *resolver.WorkItem {
	t.Helper()
	mediaDir := t.TempDir()
	mediaPath := filepath.Join(mediaDir, name)
	if err := os.WriteFile(mediaPath, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return &resolver.WorkItem{
		Source:     mediaPath,
		LocalPath:  mediaPath,
		OutputPath: filepath.Join(outputDir, base+".txt"),
		Status:     resolver.StatusPending,
	}
}

func TestProcessHappyPath(t *testing.T) {
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{text: "ola mundo"}, &stubCorrector{})
	item := newItem(t, t.TempDir(), "a.mp4")

	if err := rig.proc.Process(context.Background(), item); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if item.Status != resolver.StatusDone {
		t.Errorf("Status = %v, want done", item.Status)
	}

	data, err := os.ReadFile(item.OutputPath)
	if err != nil {
		t.Fatalf("output unreadable: %v", err)
	}
	if string(data) != "OLA MUNDO" {
		t.Errorf("output = %q, want corrected text", data)
	}
	if rig.co.lastLang != "pt-BR" {
		t.Errorf("correction language = %q, want pt-BR", rig.co.lastLang)
	}
	if rig.reg.Active() != 0 {
		t.Errorf("temp artifacts remaining = %d, want 0", rig.reg.Active())
	}
}

func TestProcessSkipsExistingOutput(t *testing.T) {
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{text: "x"}, &stubCorrector{})
	outputDir := t.TempDir()
	item := newItem(t, outputDir, "b.mp4")
	if err := os.WriteFile(item.OutputPath, []byte("already processed"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := rig.proc.Process(context.Background(), item); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if item.Status != resolver.StatusSkipped {
		t.Errorf("Status = %v, want skipped", item.Status)
	}
	if rig.ext.extractCalls != 0 || rig.tr.calls != 0 || rig.co.calls != 0 {
		t.Errorf("engine calls = %d/%d/%d, want 0/0/0",
			rig.ext.extractCalls, rig.tr.calls, rig.co.calls)
	}
}

func TestProcessEmptyOutputNotSkipped(t *testing.T) {
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{text: "x"}, &stubCorrector{})
	outputDir := t.TempDir()
	item := newItem(t, outputDir, "c.mp4")
	// Zero-byte outputs are treated as unprocessed.
	if err := os.WriteFile(item.OutputPath, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := rig.proc.Process(context.Background(), item); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if item.Status != resolver.StatusDone {
		t.Errorf("Status = %v, want done", item.Status)
	}
}

func TestProcessStageFailureReleasesArtifacts(t *testing.T) {
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{err: errors.New("model load failure")}, &stubCorrector{})
	item := newItem(t, t.TempDir(), "d.mp4")

	err := rig.proc.Process(context.Background(), item)
	if err == nil {
		t.Fatal("Process() expected error")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if stageErr.Stage != StageTranscribe {
		t.Errorf("failing stage = %q, want transcribe", stageErr.Stage)
	}
	if item.Status != resolver.StatusFailed {
		t.Errorf("Status = %v, want failed", item.Status)
	}
	if rig.reg.Active() != 0 {
		t.Errorf("temp artifacts remaining = %d, want 0", rig.reg.Active())
	}
	if _, err := os.Stat(item.OutputPath); !os.IsNotExist(err) {
		t.Error("output file exists after failed item")
	}
}

func TestRunContinuesAfterItemFailure(t *testing.T) {
	tr := &stubTranscriber{text: "fala"}
	outputDir := t.TempDir()

	bad := newItem(t, outputDir, "bad.mp4")
	good := newItem(t, outputDir, "good.mp4")

	// Fail only the first item's extraction.
	switching := &switchingExtractor{failFor: bad.LocalPath}
	reg, err := artifact.NewRegistry(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	proc := New(config.ChunkingConfig{ThresholdSeconds: 600, SegmentSeconds: 300, SilenceWindowSeconds: 15},
		"pt-BR", reg, switching, tr, &stubCorrector{}, docwriter.NewText(), logger.New("error", "text"))

	stats := proc.Run(context.Background(), []*resolver.WorkItem{bad, good})

	if bad.Status != resolver.StatusFailed {
		t.Errorf("bad item status = %v, want failed", bad.Status)
	}
	if good.Status != resolver.StatusDone {
		t.Errorf("good item status = %v, want done", good.Status)
	}
	if stats.Failed != 1 || stats.Done != 1 {
		t.Errorf("stats = %+v, want 1 done, 1 failed", stats)
	}
	if reg.Active() != 0 {
		t.Errorf("temp artifacts remaining = %d, want 0", reg.Active())
	}
}

// switchingExtractor fails extraction for one specific media path.
type switchingExtractor struct {
	stubExtractor
	failFor string
}

func (s *switchingExtractor) Extract(ctx context.Context, mediaPath, audioPath string) error {
	if mediaPath == s.failFor {
		return errors.New("missing codec")
	}
	return s.stubExtractor.Extract(ctx, mediaPath, audioPath)
}

func TestRunInterruptedBeforeStart(t *testing.T) {
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{text: "x"}, &stubCorrector{})
	outputDir := t.TempDir()
	items := []*resolver.WorkItem{
		newItem(t, outputDir, "one.mp4"),
		newItem(t, outputDir, "two.mp4"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := rig.proc.Run(ctx, items)
	if stats.Done != 0 || stats.Skipped != 0 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want nothing processed", stats)
	}
	for _, it := range items {
		if it.Status != resolver.StatusPending {
			t.Errorf("item %s status = %v, want pending", it.LocalPath, it.Status)
		}
		if _, err := os.Stat(it.OutputPath); !os.IsNotExist(err) {
			t.Errorf("output exists for unstarted item %s", it.LocalPath)
		}
	}
	if rig.tr.calls != 0 {
		t.Errorf("transcriber calls = %d, want 0", rig.tr.calls)
	}
}

func TestProcessChunksLongAudio(t *testing.T) {
	ext := &stubExtractor{duration: 900}
	tr := &stubTranscriber{text: "parte"}
	rig := newRig(t, ext, tr, &stubCorrector{})
	item := newItem(t, t.TempDir(), "long.mp4")

	if err := rig.proc.Process(context.Background(), item); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// 900s at 300s segments is 3 transcription calls.
	if tr.calls != 3 {
		t.Errorf("transcriber calls = %d, want 3", tr.calls)
	}

	data, err := os.ReadFile(item.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "PARTE PARTE PARTE" {
		t.Errorf("output = %q, want concatenated segments", data)
	}
	if rig.reg.Active() != 0 {
		t.Errorf("temp artifacts remaining = %d, want 0", rig.reg.Active())
	}
}

func TestProcessSilentAudioStillCorrects(t *testing.T) {
	co := &stubCorrector{}
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{text: ""}, co)
	item := newItem(t, t.TempDir(), "silent.mp4")

	if err := rig.proc.Process(context.Background(), item); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if co.calls != 1 {
		t.Errorf("corrector calls = %d, want 1 even for empty transcript", co.calls)
	}
	if _, err := os.Stat(item.OutputPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if item.Status != resolver.StatusDone {
		t.Errorf("Status = %v, want done", item.Status)
	}
}

func TestIdempotentSecondRun(t *testing.T) {
	rig := newRig(t, &stubExtractor{}, &stubTranscriber{text: "texto"}, &stubCorrector{})
	outputDir := t.TempDir()
	items := []*resolver.WorkItem{
		newItem(t, outputDir, "x.mp4"),
		newItem(t, outputDir, "y.mp4"),
	}

	first := rig.proc.Run(context.Background(), items)
	if first.Done != 2 {
		t.Fatalf("first run stats = %+v, want 2 done", first)
	}

	// Reset statuses as a fresh invocation would.
	for _, it := range items {
		it.Status = resolver.StatusPending
	}

	second := rig.proc.Run(context.Background(), items)
	if second.Skipped != 2 || second.Done != 0 {
		t.Errorf("second run stats = %+v, want all skipped", second)
	}
}
