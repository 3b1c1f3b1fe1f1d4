package element

// Element categories assigned by the segmenters.
const (
	CategoryTitle             = "Title"
	CategoryNarrativeText     = "NarrativeText"
	CategoryListItem          = "ListItem"
	CategoryTable             = "Table"
	CategoryCodeSnippet       = "CodeSnippet"
	CategoryUncategorizedText = "UncategorizedText"
	CategoryPageBreak         = "PageBreak"
	CategoryComposite         = "CompositeElement"
)

// Raw is a unit of content produced by a segmenter, before enrichment.
type Raw struct {
	Text     string    // Display form of the element
	Tag      string    // Source tag, e.g. "h2" (empty if the format has none)
	Category string    // Category label (empty if not assigned)
	Metadata *Metadata // Upstream metadata bundle (nil if not attached)
}

// String returns the element's display form.
func (r Raw) String() string {
	return r.Text
}

// HasTag reports whether the element carries the given tag.
func (r Raw) HasTag(tag string) bool {
	return r.Tag != "" && r.Tag == tag
}

// Element is an enriched element as written to the output file.
type Element struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}
