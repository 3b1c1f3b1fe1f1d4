package pipeline

import "github.com/dgallion1/docsplit/internal/segment"

// FileStatus is the outcome of processing one file.
type FileStatus string

const (
	StatusProcessed FileStatus = "processed"
	StatusSkipped   FileStatus = "skipped"
)

// FileResult records what happened to one input file.
type FileResult struct {
	Path     string       `json:"path"`
	Type     segment.Type `json:"-"`
	Status   FileStatus   `json:"status"`
	Elements int          `json:"elements"`
	Reason   string       `json:"reason,omitempty"`
}

// Report summarizes a run.
type Report struct {
	Files    []FileResult `json:"files"`
	Elements int          `json:"elements"`
}

func (r *Report) add(fr FileResult) {
	r.Files = append(r.Files, fr)
	r.Elements += fr.Elements
}

// Processed returns the number of files that produced output.
func (r *Report) Processed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusProcessed {
			n++
		}
	}
	return n
}

// Skipped returns the files that were skipped, in processing order.
func (r *Report) Skipped() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Status == StatusSkipped {
			out = append(out, f)
		}
	}
	return out
}
