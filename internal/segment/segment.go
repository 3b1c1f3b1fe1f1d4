// Package segment detects document formats and splits documents into
// elements.
package segment

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docsplit/internal/chunker"
	"github.com/dgallion1/docsplit/internal/element"
)

// Segmenter splits one file into elements.
type Segmenter interface {
	Segment(path string, opts Options) ([]element.Raw, error)
}

// SegmenterFunc adapts a function to Segmenter.
type SegmenterFunc func(path string, opts Options) ([]element.Raw, error)

func (f SegmenterFunc) Segment(path string, opts Options) ([]element.Raw, error) {
	return f(path, opts)
}

// Result is the outcome of dispatching one file.
type Result struct {
	Type     Type
	MIME     string
	Elements []element.Raw
}

// Dispatcher routes each file to the segmenter for its format.
type Dispatcher struct {
	segmenters map[Type]Segmenter
	fallback   Segmenter
	detect     func(path string) (Type, string, error)
	opts       Options
	log        *slog.Logger
}

// NewDispatcher returns a Dispatcher with dedicated segmenters for Markdown,
// HTML, legacy .doc and plain text; every other format goes to the auto
// segmenter.
func NewDispatcher(opts Options, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		segmenters: map[Type]Segmenter{
			Markdown: &MarkdownSegmenter{},
			HTML:     &HTMLSegmenter{},
			Doc:      &DocSegmenter{},
			Text:     &TextSegmenter{},
		},
		fallback: &AutoSegmenter{},
		detect:   Detect,
		opts:     opts,
		log:      log,
	}
}

// Register replaces the segmenter used for t.
func (d *Dispatcher) Register(t Type, s Segmenter) {
	d.segmenters[t] = s
}

// SetFallback replaces the segmenter used for formats without a dedicated one.
func (d *Dispatcher) SetFallback(s Segmenter) {
	d.fallback = s
}

// Dispatch detects the format of path and runs its segmenter. Content the
// segmenter rejects is reported as a *SegmentationError; any other error
// is an I/O or environment failure.
func (d *Dispatcher) Dispatch(path string) (Result, error) {
	t, mime, err := d.detect(path)
	if err != nil {
		return Result{}, err
	}
	res := Result{Type: t, MIME: mime}

	if d.opts.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return res, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() > d.opts.MaxFileSize {
			return res, invalid(path, t, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), d.opts.MaxFileSize))
		}
	}

	seg, ok := d.segmenters[t]
	if !ok {
		seg = d.fallback
	}
	d.log.Debug("segmenting file", "path", path, "type", t, "mime", mime)

	var raws []element.Raw
	if auto, ok := seg.(*AutoSegmenter); ok {
		raws, err = auto.SegmentDetected(path, t, mime, d.opts)
	} else {
		raws, err = seg.Segment(path, d.opts)
	}
	if err != nil {
		return res, err
	}

	if d.opts.ChunkingStrategy == ChunkingByTitle {
		raws = chunker.ByTitle(raws, chunker.Config{
			MaxCharacters: d.opts.MaxCharacters,
			Overlap:       d.opts.Overlap,
			Tokenizer:     d.opts.tokenizer(),
		})
	}
	res.Elements = raws
	return res, nil
}
