// Package enrich turns segmented elements into output records with
// provenance metadata and heading groups.
package enrich

import (
	"path/filepath"
	"strconv"

	"github.com/dgallion1/docsplit/internal/element"
)

// GroupTag is the tag that starts a new group.
const GroupTag = "h2"

// Elements annotates raws from the file at path. The group counter starts
// at 0 for every call and is bumped before an h2 element's metadata is
// built, so a heading belongs to the group it opens. group is only set
// when grouped is true.
func Elements(path string, raws []element.Raw, grouped bool) []element.Element {
	out := make([]element.Element, 0, len(raws))
	title := filepath.Base(path)
	group := 0

	for _, r := range raws {
		if r.HasTag(GroupTag) {
			group++
		}

		md := map[string]any{
			"title":  title,
			"source": path,
		}
		if grouped {
			md["group"] = strconv.Itoa(group)
		}
		// Upstream keys overwrite the ones above.
		for k, v := range r.Metadata.ToMap() {
			md[k] = v
		}
		if r.Category != "" {
			md["category"] = r.Category
		}

		out = append(out, element.Element{
			Content:  r.String(),
			Metadata: md,
		})
	}
	return out
}
