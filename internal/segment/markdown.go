package segment

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dgallion1/docsplit/internal/element"
)

// MarkdownSegmenter handles Markdown files. The document is rendered to HTML
// with goldmark and then segmented like any HTML page, so headings keep
// their h1-h6 tags.
type MarkdownSegmenter struct{}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Raw HTML passes through; it is sanitized when Options.Sanitize is set.
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

func (s *MarkdownSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, invalid(path, Markdown, fmt.Errorf("render markdown: %w", err))
	}
	return segmentHTML(path, buf.Bytes(), Markdown, "text/markdown", opts)
}
