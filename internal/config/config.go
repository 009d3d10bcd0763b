package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper    WhisperConfig    `yaml:"whisper"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	Correction CorrectionConfig `yaml:"correction"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type CorrectionConfig struct {
	Provider        string   `yaml:"provider"`
	Language        string   `yaml:"language"`
	LanguageToolURL string   `yaml:"languagetool_url"`
	GeminiModel     string   `yaml:"gemini_model"`
	GeminiAPIKeys   []string `yaml:"gemini_api_keys"`
}

// ChunkingConfig bounds peak transcription memory for long inputs.
// Audio longer than ThresholdSeconds is split into SegmentSeconds pieces;
// each boundary snaps to the nearest silence gap within SilenceWindowSeconds.
type ChunkingConfig struct {
	ThresholdSeconds     float64 `yaml:"threshold_seconds"`
	SegmentSeconds       float64 `yaml:"segment_seconds"`
	SilenceWindowSeconds float64 `yaml:"silence_window_seconds"`
	SilenceNoiseDB       int     `yaml:"silence_noise_db"`
	SilenceMinSeconds    float64 `yaml:"silence_min_seconds"`
}

type PathsConfig struct {
	TempDir string `yaml:"temp_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the yaml config at path. An empty path returns a config
// carrying only defaults (applied by Validate).
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}

	if c.Correction.Provider == "" {
		c.Correction.Provider = "languagetool"
	}
	if c.Correction.Provider != "languagetool" && c.Correction.Provider != "gemini" {
		return fmt.Errorf("correction.provider must be 'languagetool' or 'gemini', got %q", c.Correction.Provider)
	}
	if c.Correction.Language == "" {
		c.Correction.Language = "pt-BR"
	}
	if c.Correction.LanguageToolURL == "" {
		c.Correction.LanguageToolURL = "http://localhost:8010"
	}
	if c.Correction.GeminiModel == "" {
		c.Correction.GeminiModel = "gemini-2.5-flash"
	}
	if c.Correction.Provider == "gemini" && len(c.Correction.GeminiAPIKeys) == 0 {
		return fmt.Errorf("correction.gemini_api_keys is required when provider is 'gemini'")
	}

	if c.Chunking.ThresholdSeconds == 0 {
		c.Chunking.ThresholdSeconds = 600
	}
	if c.Chunking.SegmentSeconds == 0 {
		c.Chunking.SegmentSeconds = 300
	}
	if c.Chunking.SilenceWindowSeconds == 0 {
		c.Chunking.SilenceWindowSeconds = 15
	}
	if c.Chunking.SilenceNoiseDB == 0 {
		c.Chunking.SilenceNoiseDB = -30
	}
	if c.Chunking.SilenceMinSeconds == 0 {
		c.Chunking.SilenceMinSeconds = 0.3
	}
	if c.Chunking.SegmentSeconds > c.Chunking.ThresholdSeconds {
		return fmt.Errorf("chunking.segment_seconds must not exceed chunking.threshold_seconds")
	}
	// A window reaching half the segment length lets a snapped boundary
	// cross the next nominal one, producing an empty segment.
	if c.Chunking.SilenceWindowSeconds >= c.Chunking.SegmentSeconds/2 {
		return fmt.Errorf("chunking.silence_window_seconds must be less than half of chunking.segment_seconds")
	}

	if c.Paths.TempDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		c.Paths.TempDir = filepath.Join(home, ".audiowise")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
