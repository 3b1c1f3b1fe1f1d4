package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docsplit/internal/segment"
)

type Config struct {
	// Output
	OutputPath string

	// Tokenizer data tables
	TokenizerData string

	// Optional YAML file of segmenter options
	OptionsFile string

	// Logging
	LogLevel  string
	LogFormat string

	// Segmenters
	MaxFileSize          int64
	PDFFallbackPdftotext bool
	SofficePath          string

	// Chunking
	ChunkingStrategy   string
	ChunkMaxCharacters int
	ChunkOverlap       int
}

func Load() Config {
	cfg := Config{
		OutputPath: envOr("DOCSPLIT_OUTPUT", "output.json"),

		TokenizerData: envOr("DOCSPLIT_TOKENIZER_DATA", defaultTokenizerData()),

		OptionsFile: os.Getenv("DOCSPLIT_OPTIONS"),

		LogLevel:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "json")),

		MaxFileSize:          envInt64("MAX_FILE_SIZE", 104857600), // 100MB
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		SofficePath:          envOr("SOFFICE_PATH", "soffice"),

		ChunkingStrategy:   strings.ToLower(os.Getenv("CHUNKING_STRATEGY")),
		ChunkMaxCharacters: envInt("CHUNK_MAX_CHARACTERS", 500),
		ChunkOverlap:       envInt("CHUNK_OVERLAP", 0),
	}

	if cfg.MaxFileSize < 0 {
		cfg.MaxFileSize = 104857600
	}
	if cfg.ChunkMaxCharacters <= 0 {
		cfg.ChunkMaxCharacters = 500
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	switch c.ChunkingStrategy {
	case segment.ChunkingNone, segment.ChunkingByTitle:
	default:
		return fmt.Errorf("unknown CHUNKING_STRATEGY %q", c.ChunkingStrategy)
	}
	if c.ChunkOverlap >= c.ChunkMaxCharacters {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be less than CHUNK_MAX_CHARACTERS (%d)", c.ChunkOverlap, c.ChunkMaxCharacters)
	}
	return nil
}

// SegmentOptions returns the segmenter options described by the
// environment, with the options file (if any) applied on top.
func (c Config) SegmentOptions() (segment.Options, error) {
	opts := segment.DefaultOptions()
	opts.MaxFileSize = c.MaxFileSize
	opts.PDFFallbackPdftotext = c.PDFFallbackPdftotext
	opts.SofficePath = c.SofficePath
	opts.ChunkingStrategy = c.ChunkingStrategy
	opts.MaxCharacters = c.ChunkMaxCharacters
	opts.Overlap = c.ChunkOverlap

	if c.OptionsFile == "" {
		return opts, nil
	}
	return segment.LoadOptions(c.OptionsFile, opts)
}

// NewLogger builds the process logger. Output goes to stderr.
func (c Config) NewLogger() *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	hopts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, hopts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, hopts))
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// defaultTokenizerData prefers tokenizer_data next to the executable and
// falls back to the working directory.
func defaultTokenizerData() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "tokenizer_data")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "tokenizer_data"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
