package segment

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/docsplit/internal/element"
)

// PDFSegmenter handles PDF files. It tries the Go library first, then falls
// back to pdftotext when enabled and available.
type PDFSegmenter struct{}

func (s *PDFSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	text, err := extractPDFText(path)
	if err != nil && opts.PDFFallbackPdftotext {
		if fallback, ferr := extractPdftotext(path); ferr == nil {
			text, err = fallback, nil
		}
	}
	if err != nil {
		return nil, invalid(path, PDF, fmt.Errorf("extract pdf text: %w", err))
	}

	tok := opts.tokenizer()
	meta := newMetaFactory(path, "application/pdf", opts, opts.includeMetadata(true))

	var raws []element.Raw
	for i, page := range splitPages(text) {
		if i > 0 && opts.IncludePageBreaks {
			raws = append(raws, element.Raw{
				Category: element.CategoryPageBreak,
				Metadata: pageMeta(meta, i),
			})
		}
		for _, para := range splitParagraphs(page) {
			raws = append(raws, element.Raw{
				Text:     para,
				Category: classify(para, tok),
				Metadata: pageMeta(meta, i+1),
			})
		}
	}

	assignIDs(path, raws)
	return raws, nil
}

func pageMeta(meta metaFactory, page int) *element.Metadata {
	md := meta()
	if md != nil {
		md.PageNumber = page
	}
	return md
}

func extractPDFText(path string) (text string, err error) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(pageText)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func splitPages(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\f"), "\f")
}
