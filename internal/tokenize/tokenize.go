// Package tokenize splits text into sentences and words for the segmenters.
//
// Boundaries come from Unicode text segmentation (UAX #29). A data directory
// may supply per-language tables; today that is the list of abbreviations
// after which a period does not end a sentence.
package tokenize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when Config.Language is empty.
const DefaultLanguage = "english"

// Config locates the tokenizer data tables.
type Config struct {
	DataDir  string // Directory holding <language>.yaml tables (optional)
	Language string
}

// table is the on-disk form of a language data file.
type table struct {
	Abbreviations []string `yaml:"abbreviations"`
}

// Tokenizer splits text into sentences and words. It is safe for concurrent
// use once constructed.
type Tokenizer struct {
	language      string
	abbreviations map[string]struct{}
}

var builtinAbbreviations = []string{"mr", "mrs", "ms", "dr", "prof", "st", "vs", "etc", "e.g", "i.e"}

// New builds a Tokenizer from cfg. A missing data directory or language file
// falls back to built-in defaults; a file that exists but cannot be read or
// parsed is an error.
func New(cfg Config) (*Tokenizer, error) {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	t := &Tokenizer{
		language:      cfg.Language,
		abbreviations: make(map[string]struct{}),
	}

	abbrevs := builtinAbbreviations
	if cfg.DataDir != "" {
		loaded, err := loadTable(filepath.Join(cfg.DataDir, cfg.Language+".yaml"))
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			abbrevs = loaded.Abbreviations
		}
	}
	for _, a := range abbrevs {
		a = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(a), "."))
		if a != "" {
			t.abbreviations[a] = struct{}{}
		}
	}
	return t, nil
}

func loadTable(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tokenizer data: %w", err)
	}
	var tbl table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("parse tokenizer data %s: %w", path, err)
	}
	return &tbl, nil
}

// Language returns the language the tables were loaded for.
func (t *Tokenizer) Language() string {
	return t.language
}

// Sentences splits text into trimmed sentences.
func (t *Tokenizer) Sentences(text string) []string {
	var out []string
	var pending strings.Builder

	seg := sentences.FromString(text)
	for seg.Next() {
		pending.WriteString(seg.Value())
		if t.endsWithAbbreviation(pending.String()) {
			continue
		}
		if s := strings.TrimSpace(pending.String()); s != "" {
			out = append(out, s)
		}
		pending.Reset()
	}
	if s := strings.TrimSpace(pending.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// Words returns the word tokens of text, skipping whitespace and punctuation.
func (t *Tokenizer) Words(text string) []string {
	var out []string
	seg := words.FromString(text)
	for seg.Next() {
		w := seg.Value()
		if isWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// endsWithAbbreviation reports whether s ends in "<abbrev>." followed only
// by spaces.
func (t *Tokenizer) endsWithAbbreviation(s string) bool {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if !strings.HasSuffix(s, ".") {
		return false
	}
	s = strings.TrimSuffix(s, ".")
	i := strings.LastIndexFunc(s, unicode.IsSpace)
	last := strings.ToLower(s[i+1:])
	last = strings.TrimLeftFunc(last, func(r rune) bool { return unicode.IsPunct(r) })
	if last == "" {
		return false
	}
	_, ok := t.abbreviations[last]
	return ok
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
