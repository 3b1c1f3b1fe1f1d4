package segment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Type identifies a document format.
type Type int

const (
	Unknown Type = iota
	Markdown
	HTML
	Doc
	Docx
	PDF
	CSV
	Text
)

func (t Type) String() string {
	switch t {
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	case Doc:
		return "doc"
	case Docx:
		return "docx"
	case PDF:
		return "pdf"
	case CSV:
		return "csv"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Grouped reports whether elements of this type are grouped under their
// nearest preceding h2 heading.
func Grouped(t Type) bool {
	return t == Markdown || t == HTML
}

const (
	mimeDocx   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeMSWord = "application/msword"
)

// Detect sniffs the file's content and combines it with its extension to
// decide the format. It also returns the detected MIME type. Errors are
// I/O failures reading the file.
func Detect(path string) (Type, string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Unknown, "", fmt.Errorf("detect %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case m.Is("application/pdf"):
		return PDF, m.String(), nil
	case m.Is(mimeMSWord):
		return Doc, m.String(), nil
	case m.Is("application/x-ole-storage") && ext == ".doc":
		return Doc, m.String(), nil
	case m.Is(mimeDocx):
		return Docx, m.String(), nil
	case m.Is("application/zip") && ext == ".docx":
		return Docx, m.String(), nil
	case !isText(m):
		return Unknown, m.String(), nil
	case ext == ".md" || ext == ".markdown":
		return Markdown, m.String(), nil
	case m.Is("text/html") || ext == ".html" || ext == ".htm":
		return HTML, m.String(), nil
	case m.Is("text/csv") || ext == ".csv":
		return CSV, m.String(), nil
	default:
		return Text, m.String(), nil
	}
}

// isText reports whether m is text/plain or one of its descendants.
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
