package element

import "testing"

func TestMetadataToMap_OmitsUnset(t *testing.T) {
	m := &Metadata{Source: "a/b.md", Filename: "b.md"}
	got := m.ToMap()

	if len(got) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(got), got)
	}
	if got["source"] != "a/b.md" {
		t.Errorf("source: expected %q, got %v", "a/b.md", got["source"])
	}
	if _, ok := got["page_number"]; ok {
		t.Error("page_number should be omitted when zero")
	}
}

func TestMetadataToMap_TypedFieldsWinOverExtra(t *testing.T) {
	m := &Metadata{
		Filetype: "text/html",
		Extra: map[string]any{
			"filetype": "bogus",
			"category": "x",
		},
	}
	got := m.ToMap()
	if got["filetype"] != "text/html" {
		t.Errorf("expected typed filetype to win, got %v", got["filetype"])
	}
	if got["category"] != "x" {
		t.Errorf("expected extra key to be kept, got %v", got["category"])
	}
}

func TestMetadataToMap_CategoryDepthZero(t *testing.T) {
	m := &Metadata{CategoryDepth: Depth(0), PageNumber: 3}
	got := m.ToMap()
	if got["category_depth"] != 0 {
		t.Errorf("expected category_depth 0, got %v", got["category_depth"])
	}
	if got["page_number"] != 3 {
		t.Errorf("expected page_number 3, got %v", got["page_number"])
	}
}

func TestRawHasTag(t *testing.T) {
	if (Raw{Text: "x"}).HasTag("") {
		t.Error("an element without a tag must not match the empty tag")
	}
	if !(Raw{Tag: "h2"}).HasTag("h2") {
		t.Error("expected h2 to match")
	}
}

func TestMetadataToMap_Nil(t *testing.T) {
	var m *Metadata
	if got := m.ToMap(); got != nil {
		t.Errorf("expected nil map for nil bundle, got %v", got)
	}
}
