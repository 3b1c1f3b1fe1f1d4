package segment

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/element"
)

// DocxSegmenter handles .docx files.
type DocxSegmenter struct{}

func (s *DocxSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	return segmentDocx(path, path, Docx, mimeDocx, opts)
}

// segmentDocx reads the document at source and reports elements as coming
// from path. They differ when source is a converted copy.
func segmentDocx(path, source string, t Type, filetype string, opts Options) ([]element.Raw, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", source, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", source, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, invalid(path, t, fmt.Errorf("parse docx: %w", err))
	}

	tok := opts.tokenizer()
	meta := newMetaFactory(path, filetype, opts, opts.includeMetadata(true))

	var raws []element.Raw
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		md := meta()
		style := docxStyle(para)
		var category string
		switch level := docxHeadingLevel(style); {
		case level > 0:
			category = element.CategoryTitle
			if md != nil {
				md.CategoryDepth = element.Depth(level - 1)
			}
		case strings.Contains(strings.ToLower(style), "list"):
			category = element.CategoryListItem
		default:
			category = classify(text, tok)
		}

		raws = append(raws, element.Raw{
			Text:     text,
			Category: category,
			Metadata: md,
		})
	}

	assignIDs(path, raws)
	return raws, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxHeadingLevel maps "Heading2", "heading 2" and "Title" styles to a
// heading level; other styles are 0.
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if s == "title" {
		return 1
	}
	rest, ok := strings.CutPrefix(s, "heading")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > 9 {
		return 0
	}
	return n
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
