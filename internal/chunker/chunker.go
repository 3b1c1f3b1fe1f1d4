// Package chunker combines segmented elements into size-bounded chunks.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docsplit/internal/element"
	"github.com/dgallion1/docsplit/internal/tokenize"
)

// Config controls chunking behavior. Sizes are in characters.
type Config struct {
	MaxCharacters int // Hard ceiling on chunk text length.
	Overlap       int // Characters carried from the end of a split chunk into the next.

	// Tokenizer finds sentence boundaries in oversized paragraphs. Nil uses
	// the built-in English tables.
	Tokenizer *tokenize.Tokenizer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxCharacters: 500}
}

func (c Config) normalize() Config {
	if c.MaxCharacters <= 0 {
		c.MaxCharacters = 500
	}
	if c.Overlap < 0 || c.Overlap >= c.MaxCharacters {
		c.Overlap = 0
	}
	if c.Tokenizer == nil {
		// Without a data directory New cannot fail.
		c.Tokenizer, _ = tokenize.New(tokenize.Config{})
	}
	return c
}

// ByTitle starts a new section at every Title and packs consecutive
// elements of a section into CompositeElement chunks joined by blank lines.
// Tables are emitted alone and page breaks are dropped. Each section's tag
// (the tag of its first element) is kept only on the section's first chunk.
func ByTitle(raws []element.Raw, cfg Config) []element.Raw {
	cfg = cfg.normalize()
	var out []element.Raw
	var sec *section

	flush := func() {
		if sec != nil {
			out = append(out, sec.chunks(cfg)...)
			sec = nil
		}
	}

	for _, r := range raws {
		switch r.Category {
		case element.CategoryPageBreak:
			continue
		case element.CategoryTable:
			flush()
			out = append(out, element.Raw{
				Text:     r.Text,
				Tag:      r.Tag,
				Category: element.CategoryTable,
				Metadata: r.Metadata,
			})
			continue
		case element.CategoryTitle:
			flush()
		}
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if sec == nil {
			sec = &section{tag: r.Tag, meta: r.Metadata}
		}
		sec.parts = append(sec.parts, strings.TrimSpace(r.Text))
	}
	flush()
	return out
}

type section struct {
	tag   string
	meta  *element.Metadata
	parts []string
}

// chunks packs the section's parts greedily; parts longer than the limit
// are split on paragraph and sentence boundaries.
func (s *section) chunks(cfg Config) []element.Raw {
	var texts []string
	var current strings.Builder

	emit := func() {
		if current.Len() > 0 {
			texts = append(texts, current.String())
			current.Reset()
		}
	}

	for _, part := range s.parts {
		n := charLen(part)
		if n > cfg.MaxCharacters {
			emit()
			texts = append(texts, splitText(part, cfg)...)
			continue
		}
		if current.Len() > 0 && charLen(current.String())+2+n > cfg.MaxCharacters {
			emit()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(part)
	}
	emit()

	out := make([]element.Raw, 0, len(texts))
	for i, text := range texts {
		r := element.Raw{
			Text:     text,
			Category: element.CategoryComposite,
			Metadata: chunkMeta(s.meta),
		}
		if i == 0 {
			r.Tag = s.tag
		}
		out = append(out, r)
	}
	return out
}

// chunkMeta copies the document-level fields of m. Element-level fields
// do not describe a combined chunk.
func chunkMeta(m *element.Metadata) *element.Metadata {
	if m == nil {
		return nil
	}
	c := *m
	c.ElementID = ""
	c.ParentID = ""
	c.TextAsHTML = ""
	c.CategoryDepth = nil
	c.LinkURLs = nil
	return &c
}

// splitText breaks text into pieces of at most cfg.MaxCharacters
// characters, with overlap.
func splitText(text string, cfg Config) []string {
	maxChars, overlap := cfg.MaxCharacters, cfg.Overlap
	paragraphs := splitByParagraphs(text)

	var result []string
	var current strings.Builder

	for _, para := range paragraphs {
		if charLen(para) > maxChars {
			if current.Len() > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			result = append(result, splitBySentences(para, cfg)...)
			continue
		}

		if current.Len() > 0 && charLen(current.String())+2+charLen(para) > maxChars {
			prev := current.String()
			result = append(result, prev)
			current.Reset()
			if tail := overlapText(prev, overlap); tail != "" && charLen(tail)+2+charLen(para) <= maxChars {
				current.WriteString(tail)
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitBySentences breaks a large paragraph into sentence-based pieces.
// Sentences longer than the limit are cut at word boundaries.
func splitBySentences(text string, cfg Config) []string {
	maxChars, overlap := cfg.MaxCharacters, cfg.Overlap
	var result []string
	var current strings.Builder

	for _, sent := range cfg.Tokenizer.Sentences(text) {
		for _, piece := range hardWrap(sent, maxChars) {
			if current.Len() > 0 && charLen(current.String())+1+charLen(piece) > maxChars {
				prev := current.String()
				result = append(result, prev)
				current.Reset()
				if tail := overlapText(prev, overlap); tail != "" && charLen(tail)+1+charLen(piece) <= maxChars {
					current.WriteString(tail)
				}
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(piece)
		}
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// hardWrap cuts s into pieces of at most maxChars characters, preferring
// word boundaries.
func hardWrap(s string, maxChars int) []string {
	if charLen(s) <= maxChars {
		return []string{s}
	}
	var out []string
	var current strings.Builder
	for _, w := range strings.Fields(s) {
		for charLen(w) > maxChars {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			head, rest := cutChars(w, maxChars)
			out = append(out, head)
			w = rest
		}
		if current.Len() > 0 && charLen(current.String())+1+charLen(w) > maxChars {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(w)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// overlapText returns the trailing whole words of text that fit in n characters.
func overlapText(text string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(text)
	size := 0
	start := len(words)
	for start > 0 {
		w := charLen(words[start-1])
		if size > 0 {
			w++
		}
		if size+w > n {
			break
		}
		size += w
		start--
	}
	if start == len(words) || start == 0 {
		return ""
	}
	return strings.Join(words[start:], " ")
}

func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

func cutChars(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
