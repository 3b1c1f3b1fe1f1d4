package element

// Metadata is the bundle a segmenter attaches to an element.
// Zero-valued fields are treated as unset and left out of ToMap.
type Metadata struct {
	Source        string
	Filename      string
	FileDirectory string
	Filetype      string
	LastModified  string
	PageNumber    int
	CategoryDepth *int
	Languages     []string
	ElementID     string
	ParentID      string
	TextAsHTML    string
	LinkURLs      []string

	// Extra holds format-specific keys with no typed field.
	Extra map[string]any
}

// ToMap converts the bundle to a mapping. Extra is copied first so typed
// fields win on conflict. A nil bundle yields nil.
func (m *Metadata) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.Extra)+8)
	for k, v := range m.Extra {
		out[k] = v
	}

	setString := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	setString("source", m.Source)
	setString("filename", m.Filename)
	setString("file_directory", m.FileDirectory)
	setString("filetype", m.Filetype)
	setString("last_modified", m.LastModified)
	setString("element_id", m.ElementID)
	setString("parent_id", m.ParentID)
	setString("text_as_html", m.TextAsHTML)

	if m.PageNumber > 0 {
		out["page_number"] = m.PageNumber
	}
	if m.CategoryDepth != nil {
		out["category_depth"] = *m.CategoryDepth
	}
	if len(m.Languages) > 0 {
		out["languages"] = append([]string(nil), m.Languages...)
	}
	if len(m.LinkURLs) > 0 {
		out["link_urls"] = append([]string(nil), m.LinkURLs...)
	}
	return out
}

// Depth returns a pointer to d, for CategoryDepth.
func Depth(d int) *int {
	return &d
}
