package segment

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by the SegmentationError returned for formats
// no segmenter handles.
var ErrUnsupported = errors.New("file type is not supported")

// ErrInvalidUTF8 is returned when a plain-text file is not valid UTF-8.
// It is not a SegmentationError.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// SegmentationError reports that a file's content was rejected by its
// segmenter. It is the only error the pipeline recovers from: the file is
// skipped and processing continues.
type SegmentationError struct {
	Path string
	Type Type
	Err  error
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("segment %s (%s): %v", e.Path, e.Type, e.Err)
}

func (e *SegmentationError) Unwrap() error {
	return e.Err
}

// IsSegmentationError reports whether err is or wraps a SegmentationError.
func IsSegmentationError(err error) bool {
	var segErr *SegmentationError
	return errors.As(err, &segErr)
}

func invalid(path string, t Type, err error) error {
	return &SegmentationError{Path: path, Type: t, Err: err}
}
