package segment

import (
	"fmt"
	"path/filepath"

	"github.com/dgallion1/docsplit/internal/element"
)

// AutoSegmenter detects the format itself and picks a segmenter. It is the
// dispatcher's route for everything without a dedicated segmenter; the
// dispatcher hands it the format it already detected, so the file is only
// sniffed once.
type AutoSegmenter struct {
	// Detect overrides format detection; nil uses Detect.
	Detect func(path string) (Type, string, error)
}

func (s *AutoSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	detect := s.Detect
	if detect == nil {
		detect = Detect
	}
	t, mime, err := detect(path)
	if err != nil {
		return nil, err
	}
	return s.SegmentDetected(path, t, mime, opts)
}

// SegmentDetected runs the segmenter for a format detected by the caller.
func (s *AutoSegmenter) SegmentDetected(path string, t Type, mime string, opts Options) ([]element.Raw, error) {
	switch t {
	case Docx:
		return (&DocxSegmenter{}).Segment(path, opts)
	case PDF:
		return (&PDFSegmenter{}).Segment(path, opts)
	case CSV:
		return (&CSVSegmenter{}).Segment(path, opts)
	case Markdown:
		return (&MarkdownSegmenter{}).Segment(path, opts)
	case HTML:
		return (&HTMLSegmenter{}).Segment(path, opts)
	case Doc:
		return (&DocSegmenter{}).Segment(path, opts)
	case Text:
		return segmentParagraphs(path, opts)
	default:
		return nil, invalid(path, t, fmt.Errorf("%w: %s (%s)", ErrUnsupported, mime, filepath.Ext(path)))
	}
}
