package segment

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docsplit/internal/element"
)

// TextSegmenter handles plain text files: one element per line, line
// terminator included. Each element's metadata bundle carries only the
// source path. Files that are not valid UTF-8 fail with ErrInvalidUTF8.
type TextSegmenter struct{}

func (s *TextSegmenter) Segment(path string, _ Options) ([]element.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decode %s: %w", path, ErrInvalidUTF8)
	}

	var raws []element.Raw
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if line == "" {
			continue
		}
		raws = append(raws, element.Raw{
			Text:     line,
			Metadata: &element.Metadata{Source: path},
		})
	}
	return raws, nil
}

// segmentParagraphs splits a text file on blank lines and classifies each
// paragraph.
func segmentParagraphs(path string, opts Options) ([]element.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, invalid(path, Text, ErrInvalidUTF8)
	}

	tok := opts.tokenizer()
	meta := newMetaFactory(path, "text/plain", opts, opts.includeMetadata(true))

	var raws []element.Raw
	for _, para := range splitParagraphs(string(data)) {
		raws = append(raws, element.Raw{
			Text:     para,
			Category: classify(para, tok),
			Metadata: meta(),
		})
	}
	assignIDs(path, raws)
	return raws, nil
}

// splitParagraphs groups lines into paragraphs separated by blank or
// whitespace-only lines.
func splitParagraphs(text string) []string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return paragraphs
}
