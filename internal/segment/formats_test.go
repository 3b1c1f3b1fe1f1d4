package segment

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docsplit/internal/element"
)

func TestCSVSegmenter(t *testing.T) {
	p := writeTemp(t, "stock.csv", "name,qty\n\"apple, red\",3\npear,<5>\n")
	raws, err := (&CSVSegmenter{}).Segment(p, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 table element, got %d", len(raws))
	}
	r := raws[0]
	if r.Category != element.CategoryTable {
		t.Errorf("expected Table, got %s", r.Category)
	}
	if r.Text != "name qty\napple, red 3\npear <5>" {
		t.Errorf("unexpected text %q", r.Text)
	}
	want := "<table><tr><th>name</th><th>qty</th></tr><tr><td>apple, red</td><td>3</td></tr><tr><td>pear</td><td>&lt;5&gt;</td></tr></table>"
	if r.Metadata == nil || r.Metadata.TextAsHTML != want {
		t.Errorf("unexpected text_as_html %+v", r.Metadata)
	}
}

func TestCSVSegmenter_Empty(t *testing.T) {
	p := writeTemp(t, "empty.csv", "")
	raws, err := (&CSVSegmenter{}).Segment(p, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 0 {
		t.Errorf("expected 0 elements, got %d", len(raws))
	}
}

func TestAutoSegmenter_Unsupported(t *testing.T) {
	auto := &AutoSegmenter{Detect: func(string) (Type, string, error) {
		return Unknown, "image/png", nil
	}}
	_, err := auto.Segment("photo.png", DefaultOptions())
	if !IsSegmentationError(err) || !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected segmentation error wrapping ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "image/png") {
		t.Errorf("expected error to name the detected type, got %q", err)
	}
}

func TestAutoSegmenter_DetectErrorIsFatal(t *testing.T) {
	boom := errors.New("permission denied")
	auto := &AutoSegmenter{Detect: func(string) (Type, string, error) { return Unknown, "", boom }}
	_, err := auto.Segment("x", DefaultOptions())
	if !errors.Is(err, boom) || IsSegmentationError(err) {
		t.Fatalf("expected detection error to pass through, got %v", err)
	}
}

func TestAutoSegmenter_TextParagraphs(t *testing.T) {
	p := writeTemp(t, "readme", "Overview\n\nThis tool splits documents into elements.\n")
	raws, err := (&AutoSegmenter{}).Segment(p, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 2 || raws[0].Category != element.CategoryTitle || raws[1].Category != element.CategoryNarrativeText {
		t.Errorf("unexpected elements %+v", raws)
	}
	if raws[1].Metadata == nil || raws[1].Metadata.Filetype != "text/plain" {
		t.Errorf("expected metadata bundle, got %+v", raws[1].Metadata)
	}
}

func TestAutoSegmenter_InvalidUTF8IsSegmentationError(t *testing.T) {
	auto := &AutoSegmenter{Detect: func(string) (Type, string, error) { return Text, "text/plain", nil }}
	p := writeTemp(t, "bad", "caf\xe9\n")
	_, err := auto.Segment(p, DefaultOptions())
	if !IsSegmentationError(err) || !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected segmentation error wrapping ErrInvalidUTF8, got %v", err)
	}
}

func TestPDFSegmenter_CorruptFile(t *testing.T) {
	p := writeTemp(t, "broken.pdf", "%PDF-1.4\nthis is not really a pdf\n")
	opts := DefaultOptions()
	opts.PDFFallbackPdftotext = false
	_, err := (&PDFSegmenter{}).Segment(p, opts)
	if !IsSegmentationError(err) {
		t.Fatalf("expected segmentation error for corrupt pdf, got %v", err)
	}
}

func TestSplitPages(t *testing.T) {
	got := splitPages("page one\fpage two\f")
	if len(got) != 2 || got[0] != "page one" || got[1] != "page two" {
		t.Errorf("unexpected pages %q", got)
	}
}

func TestPageMeta(t *testing.T) {
	meta := newMetaFactory("/tmp/a.pdf", "application/pdf", DefaultOptions(), true)
	md := pageMeta(meta, 3)
	if md.PageNumber != 3 || md.Filename != "a.pdf" || md.FileDirectory != "/tmp" {
		t.Errorf("unexpected metadata %+v", md)
	}
	if pageMeta(newMetaFactory("/tmp/a.pdf", "application/pdf", DefaultOptions(), false), 3) != nil {
		t.Error("expected nil metadata when disabled")
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	tests := map[string]int{
		"Heading1":      1,
		"heading 3":     3,
		"Title":         1,
		"Heading10":     0,
		"Normal":        0,
		"":              0,
		"ListParagraph": 0,
	}
	for style, want := range tests {
		if got := docxHeadingLevel(style); got != want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", style, got, want)
		}
	}
}

func TestDocxSegmenter_NotADocx(t *testing.T) {
	p := writeTemp(t, "fake.docx", "plain text pretending to be a docx")
	_, err := (&DocxSegmenter{}).Segment(p, DefaultOptions())
	if !IsSegmentationError(err) {
		t.Fatalf("expected segmentation error, got %v", err)
	}
}

func fakeSoffice(t *testing.T, script string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "soffice")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDocSegmenter_MissingConverterIsFatal(t *testing.T) {
	opts := DefaultOptions()
	opts.SofficePath = filepath.Join(t.TempDir(), "no-soffice-here")
	_, err := (&DocSegmenter{}).Segment(writeTemp(t, "a.doc", oleHeader()), opts)
	if err == nil {
		t.Fatal("expected error without a converter")
	}
	if IsSegmentationError(err) {
		t.Error("a missing converter must not be a segmentation error")
	}
}

func TestDocSegmenter_ConversionFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.SofficePath = fakeSoffice(t, "echo 'source file could not be loaded' >&2\nexit 1\n")
	_, err := (&DocSegmenter{}).Segment(writeTemp(t, "a.doc", oleHeader()), opts)
	if !IsSegmentationError(err) {
		t.Fatalf("expected segmentation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "could not be loaded") {
		t.Errorf("expected converter output in error, got %q", err)
	}
}

func TestDocSegmenter_NoOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.SofficePath = fakeSoffice(t, "exit 0\n")
	_, err := (&DocSegmenter{}).Segment(writeTemp(t, "a.doc", oleHeader()), opts)
	if !IsSegmentationError(err) {
		t.Fatalf("expected segmentation error, got %v", err)
	}
}
