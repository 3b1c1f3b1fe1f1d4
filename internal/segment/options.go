package segment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docsplit/internal/tokenize"
)

// Chunking strategies.
const (
	ChunkingNone    = ""
	ChunkingByTitle = "by_title"
)

// Options is passed unchanged to every segmenter call.
type Options struct {
	// IncludeMetadata attaches a metadata bundle to each element. Unset
	// means the per-format default: off for Markdown and HTML, on otherwise.
	IncludeMetadata *bool `yaml:"include_metadata"`

	// IncludePageBreaks emits a PageBreak element between PDF pages.
	IncludePageBreaks bool `yaml:"include_page_breaks"`

	// Languages is recorded in element metadata.
	Languages []string `yaml:"languages"`

	// Sanitize strips scripts, styles and unsafe markup before HTML is walked.
	Sanitize bool `yaml:"sanitize"`

	PDFFallbackPdftotext bool   `yaml:"pdf_fallback_pdftotext"`
	SofficePath          string `yaml:"soffice_path"`

	// MaxFileSize rejects larger files as a segmentation error. Zero disables the check.
	MaxFileSize int64 `yaml:"max_file_size"`

	ChunkingStrategy string `yaml:"chunking_strategy"`
	MaxCharacters    int    `yaml:"max_characters"`
	Overlap          int    `yaml:"overlap"`

	Tokenizer *tokenize.Tokenizer `yaml:"-"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Sanitize:             true,
		PDFFallbackPdftotext: true,
		SofficePath:          "soffice",
		MaxFileSize:          100 * 1024 * 1024,
		MaxCharacters:        500,
	}
}

// LoadOptions reads a YAML options file over base. Keys absent from the
// file keep their value from base.
func LoadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read options: %w", err)
	}
	opts := base
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return base, fmt.Errorf("parse options %s: %w", path, err)
	}
	opts.Tokenizer = base.Tokenizer
	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}

// Validate checks for values no segmenter can honor.
func (o Options) Validate() error {
	switch o.ChunkingStrategy {
	case ChunkingNone, ChunkingByTitle:
	default:
		return fmt.Errorf("unknown chunking strategy %q", o.ChunkingStrategy)
	}
	if o.ChunkingStrategy != ChunkingNone && o.MaxCharacters <= 0 {
		return fmt.Errorf("max_characters must be positive, got %d", o.MaxCharacters)
	}
	if o.Overlap < 0 || (o.MaxCharacters > 0 && o.Overlap >= o.MaxCharacters) {
		return fmt.Errorf("overlap %d must be in [0, max_characters)", o.Overlap)
	}
	return nil
}

func (o Options) includeMetadata(def bool) bool {
	if o.IncludeMetadata == nil {
		return def
	}
	return *o.IncludeMetadata
}

func (o Options) tokenizer() *tokenize.Tokenizer {
	if o.Tokenizer != nil {
		return o.Tokenizer
	}
	// Without a data directory New cannot fail.
	tok, _ := tokenize.New(tokenize.Config{})
	return tok
}
