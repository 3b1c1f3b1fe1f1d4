package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docsplit/internal/element"
)

// metaFactory returns a fresh metadata bundle per call, or nil when the
// bundle is disabled.
type metaFactory func() *element.Metadata

func newMetaFactory(path, filetype string, opts Options, enabled bool) metaFactory {
	if !enabled {
		return func() *element.Metadata { return nil }
	}
	base := element.Metadata{
		Filename:      filepath.Base(path),
		FileDirectory: filepath.Dir(path),
		Filetype:      filetype,
		Languages:     opts.Languages,
	}
	if info, err := os.Stat(path); err == nil {
		base.LastModified = info.ModTime().UTC().Format(time.RFC3339)
	}
	return func() *element.Metadata {
		m := base
		return &m
	}
}

// assignIDs gives every element that has a metadata bundle a stable
// element_id and links it to the nearest enclosing Title via parent_id.
// Titles nest by category_depth.
func assignIDs(path string, raws []element.Raw) {
	type frame struct {
		id    string
		depth int
	}
	var stack []frame

	for i := range raws {
		r := &raws[i]
		if r.Metadata == nil {
			continue
		}
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s\x00%d\x00%s", path, i, r.Text))).String()
		r.Metadata.ElementID = id

		if r.Category != element.CategoryTitle {
			if len(stack) > 0 {
				r.Metadata.ParentID = stack[len(stack)-1].id
			}
			continue
		}

		depth := 0
		if r.Metadata.CategoryDepth != nil {
			depth = *r.Metadata.CategoryDepth
		}
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			r.Metadata.ParentID = stack[len(stack)-1].id
		}
		stack = append(stack, frame{id: id, depth: depth})
	}
}
