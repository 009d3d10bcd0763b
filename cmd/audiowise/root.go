package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"audiowise/internal/artifact"
	"audiowise/internal/config"
	"audiowise/internal/corrector"
	"audiowise/internal/docwriter"
	"audiowise/internal/extractor"
	"audiowise/internal/logger"
	"audiowise/internal/processor"
	"audiowise/internal/resolver"
	"audiowise/internal/transcriber"
	"audiowise/internal/watcher"
	"audiowise/pkg/executor"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitNoInput = 2
)

var (
	errInterrupted = errors.New("interrupted")
	errItemsFailed = errors.New("one or more items failed")
)

type rootOptions struct {
	input      string
	output     string
	model      string
	language   string
	configPath string
	format     string
	provider   string
	watch      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "audiowise",
		Short:         "Extract audio from videos and produce grammar-corrected transcripts",
		Long:          "audiowise extracts audio from video files, transcribes the speech with whisper, runs grammar correction, and writes the transcript. Inputs can be a single file, a folder of videos, or a URL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "input video file, folder, or URL (required)")
	flags.StringVarP(&opts.output, "output", "o", "", "output transcript file or folder (required)")
	flags.StringVarP(&opts.model, "model", "m", "", "whisper model size: tiny, base, small, medium, large (default base)")
	flags.StringVarP(&opts.language, "language", "l", "", "grammar correction language tag (default pt-BR)")
	flags.StringVar(&opts.configPath, "config", "", "path to yaml config file")
	flags.StringVar(&opts.format, "format", "txt", "output format: txt or docx")
	flags.StringVar(&opts.provider, "corrector", "", "correction backend: languagetool or gemini")
	flags.BoolVar(&opts.watch, "watch", false, "after the initial batch, keep processing new files in the input folder")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

// Execute runs the CLI and maps errors to process exit codes:
// 0 all items done or skipped, 1 failure or interruption, 2 no input
// could be resolved.
func Execute() int {
	err := newRootCmd().Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	if errors.Is(err, resolver.ErrInputNotFound) || errors.Is(err, resolver.ErrNoMediaFound) {
		return exitNoInput
	}
	return exitFailure
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Flags override file config.
	if opts.model != "" {
		cfg.Whisper.Model = opts.model
	}
	if opts.language != "" {
		cfg.Correction.Language = opts.language
	}
	if opts.provider != "" {
		cfg.Correction.Provider = opts.provider
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	model, err := transcriber.ParseModelSize(cfg.Whisper.Model)
	if err != nil {
		return err
	}

	var writer docwriter.Writer
	switch strings.ToLower(opts.format) {
	case "txt":
		writer = docwriter.NewText()
	case "docx":
		writer = docwriter.NewDocx()
	default:
		return fmt.Errorf("unknown output format %q (expected txt or docx)", opts.format)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	reg, err := artifact.NewRegistry(cfg.Paths.TempDir)
	if err != nil {
		return err
	}
	// The single cleanup point for every exit path: normal completion,
	// per-item failure, internal error, and interruption all pass here.
	defer func() {
		if n := reg.ReleaseAll(); n > 0 {
			log.Info(context.Background(), "Removed %d temporary files", n)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exec := executor.New()

	ext := extractor.New(cfg.FFmpeg, cfg.Chunking, exec, log)
	if err := ext.CheckAvailable(ctx); err != nil {
		return fmt.Errorf("audio extraction engine unavailable: %w", err)
	}

	tr := transcriber.New(cfg.Whisper, model, reg, exec, log)
	if err := tr.CheckAvailable(ctx); err != nil {
		return fmt.Errorf("transcription engine unavailable: %w", err)
	}

	co, err := corrector.New(cfg.Correction, log)
	if err != nil {
		return err
	}

	res := resolver.New(reg, log, writer.Ext())
	items, err := res.Resolve(ctx, opts.input, opts.output)
	if err != nil {
		return err
	}

	proc := processor.New(cfg.Chunking, cfg.Correction.Language, reg, ext, tr, co, writer, log)
	stats := proc.Run(ctx, items)

	if opts.watch && ctx.Err() == nil {
		if err := runWatch(ctx, opts, proc, writer, log); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	if ctx.Err() != nil {
		return errInterrupted
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errItemsFailed, stats.Failed, stats.Total)
	}
	return nil
}

// runWatch keeps processing media files newly created in the input
// folder until interrupted. Only valid for directory inputs.
func runWatch(ctx context.Context, opts *rootOptions, proc processor.Processor, writer docwriter.Writer, log logger.Logger) error {
	info, err := os.Stat(opts.input)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("--watch requires a folder input, got %s", opts.input)
	}

	handler := func(ctx context.Context, path string) error {
		base := filepath.Base(path)
		item := &resolver.WorkItem{
			Source:     path,
			LocalPath:  path,
			OutputPath: filepath.Join(opts.output, strings.TrimSuffix(base, filepath.Ext(base))+writer.Ext()),
			Status:     resolver.StatusPending,
		}
		return proc.Process(ctx, item)
	}

	w, err := watcher.New(opts.input, handler, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Start(ctx)
}
