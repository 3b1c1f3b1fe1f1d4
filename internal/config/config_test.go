package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docsplit/internal/segment"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DOCSPLIT_OUTPUT", "DOCSPLIT_OPTIONS", "LOG_LEVEL", "LOG_FORMAT", "MAX_FILE_SIZE",
		"PDF_FALLBACK_PDFTOTEXT", "SOFFICE_PATH", "CHUNKING_STRATEGY", "CHUNK_MAX_CHARACTERS", "CHUNK_OVERLAP"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.OutputPath != "output.json" {
		t.Errorf("expected output.json, got %q", cfg.OutputPath)
	}
	if cfg.MaxFileSize != 104857600 {
		t.Errorf("expected 100MB max file size, got %d", cfg.MaxFileSize)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
	if cfg.SofficePath != "soffice" || cfg.LogFormat != "json" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DOCSPLIT_OUTPUT", "/tmp/out.json")
	t.Setenv("DOCSPLIT_TOKENIZER_DATA", "/opt/tok")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("CHUNKING_STRATEGY", "by_title")
	t.Setenv("CHUNK_MAX_CHARACTERS", "800")
	t.Setenv("CHUNK_OVERLAP", "not-a-number")

	cfg := Load()
	if cfg.OutputPath != "/tmp/out.json" || cfg.TokenizerData != "/opt/tok" {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.MaxFileSize != 1024 || cfg.PDFFallbackPdftotext {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.ChunkingStrategy != "by_title" || cfg.ChunkMaxCharacters != 800 || cfg.ChunkOverlap != 0 {
		t.Errorf("unexpected chunking config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{OutputPath: "o.json", LogLevel: "info", LogFormat: "json", ChunkMaxCharacters: 500}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"empty output", func(c *Config) { c.OutputPath = "" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"bad strategy", func(c *Config) { c.ChunkingStrategy = "by_page" }, true},
		{"overlap too large", func(c *Config) { c.ChunkOverlap = 500 }, true},
	}
	for _, tt := range tests {
		c := base
		tt.mutate(&c)
		if err := c.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSegmentOptions_FileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	yml := "include_page_breaks: true\nlanguages: [eng]\nmax_characters: 300\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		SofficePath:        "/usr/bin/soffice",
		ChunkingStrategy:   segment.ChunkingByTitle,
		ChunkMaxCharacters: 900,
		OptionsFile:        path,
	}
	opts, err := cfg.SegmentOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.IncludePageBreaks || len(opts.Languages) != 1 || opts.MaxCharacters != 300 {
		t.Errorf("options file not applied: %+v", opts)
	}
	if opts.SofficePath != "/usr/bin/soffice" || opts.ChunkingStrategy != segment.ChunkingByTitle {
		t.Errorf("env values lost: %+v", opts)
	}
	if !opts.Sanitize {
		t.Error("expected sanitize default to survive")
	}
}

func TestSegmentOptions_MissingFile(t *testing.T) {
	cfg := Config{ChunkMaxCharacters: 500, OptionsFile: filepath.Join(t.TempDir(), "none.yaml")}
	if _, err := cfg.SegmentOptions(); err == nil {
		t.Fatal("expected error for missing options file")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
