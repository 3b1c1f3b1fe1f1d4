// Package pipeline drives a run: enumerate inputs, segment each file,
// enrich the elements and collect them in order.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/docsplit/internal/element"
	"github.com/dgallion1/docsplit/internal/enrich"
	"github.com/dgallion1/docsplit/internal/segment"
	"github.com/dgallion1/docsplit/internal/walker"
)

// Dispatcher segments a single file.
type Dispatcher interface {
	Dispatch(path string) (segment.Result, error)
}

// Pipeline processes files one at a time, in enumeration order.
type Pipeline struct {
	dispatcher Dispatcher
	log        *slog.Logger
}

func New(d Dispatcher, log *slog.Logger) *Pipeline {
	return &Pipeline{dispatcher: d, log: log}
}

// Run enumerates paths and processes every file found. Files whose content
// cannot be segmented are skipped and recorded in the report; any other
// error aborts the run.
func (p *Pipeline) Run(paths ...string) (*Report, []element.Element, error) {
	files, err := walker.Files(p.log, paths...)
	if err != nil {
		return nil, nil, fmt.Errorf("enumerate inputs: %w", err)
	}
	p.log.Info("enumerated inputs", "files", len(files))

	report := &Report{}
	out := []element.Element{}
	for _, path := range files {
		res, elements, err := p.Process(path)
		if err != nil {
			return report, nil, err
		}
		report.add(res)
		out = append(out, elements...)
	}
	return report, out, nil
}

// Process segments and enriches a single file. A segmentation failure is
// logged and returned as a skipped result, not an error.
func (p *Pipeline) Process(path string) (FileResult, []element.Element, error) {
	log := p.log.With("path", path)
	fr := FileResult{Path: path}

	res, err := p.dispatcher.Dispatch(path)
	fr.Type = res.Type
	if err != nil {
		if segment.IsSegmentationError(err) {
			log.Error("skipping file", "error", err.Error())
			fr.Status = StatusSkipped
			fr.Reason = err.Error()
			return fr, nil, nil
		}
		return fr, nil, fmt.Errorf("process %s: %w", path, err)
	}

	elements := enrich.Elements(path, res.Elements, segment.Grouped(res.Type))
	fr.Status = StatusProcessed
	fr.Elements = len(elements)
	log.Debug("processed file", "type", res.Type, "mime", res.MIME, "elements", len(elements))
	return fr, elements, nil
}
