package enrich

import (
	"testing"

	"github.com/dgallion1/docsplit/internal/element"
)

func TestElements_GroupCounter(t *testing.T) {
	tags := []string{"p", "p", "h2", "p", "p", "h2", "p"}
	raws := make([]element.Raw, len(tags))
	for i, tag := range tags {
		raws[i] = element.Raw{Text: "x", Tag: tag}
	}

	got := Elements("/docs/guide.md", raws, true)

	want := []string{"0", "0", "1", "1", "1", "2", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Metadata["group"] != w {
			t.Errorf("element[%d]: expected group %q, got %v", i, w, got[i].Metadata["group"])
		}
	}
}

func TestElements_GroupResetsPerCall(t *testing.T) {
	raws := []element.Raw{{Text: "A", Tag: "h2"}}
	Elements("a.md", raws, true)
	got := Elements("b.md", raws, true)
	if got[0].Metadata["group"] != "1" {
		t.Errorf("expected counter to restart per file, got %v", got[0].Metadata["group"])
	}
}

func TestElements_BaseMetadata(t *testing.T) {
	got := Elements("/data/in/notes.txt", []element.Raw{{Text: "hello\n"}}, false)

	md := got[0].Metadata
	if md["title"] != "notes.txt" {
		t.Errorf("expected title notes.txt, got %v", md["title"])
	}
	if md["source"] != "/data/in/notes.txt" {
		t.Errorf("expected source path, got %v", md["source"])
	}
	if _, ok := md["group"]; ok {
		t.Error("group must not be set for ungrouped sources")
	}
	if _, ok := md["category"]; ok {
		t.Error("category must not be set when the element has none")
	}
	if got[0].Content != "hello\n" {
		t.Errorf("expected content to be the display form, got %q", got[0].Content)
	}
}

func TestElements_CategorySetLast(t *testing.T) {
	raws := []element.Raw{{
		Text:     "Body",
		Category: "y",
		Metadata: &element.Metadata{Extra: map[string]any{"category": "x"}},
	}}
	got := Elements("a.html", raws, true)
	if got[0].Metadata["category"] != "y" {
		t.Errorf("expected local category y to win, got %v", got[0].Metadata["category"])
	}
}

func TestElements_UpstreamOverridesBase(t *testing.T) {
	raws := []element.Raw{{
		Text:     "Body",
		Metadata: &element.Metadata{Source: "upstream", Filename: "a.html", Extra: map[string]any{"title": "Upstream"}},
	}}
	md := Elements("/x/a.html", raws, true)[0].Metadata
	if md["source"] != "upstream" || md["title"] != "Upstream" {
		t.Errorf("expected upstream keys to overwrite base keys, got %v", md)
	}
	if md["filename"] != "a.html" || md["group"] != "0" {
		t.Errorf("expected merged metadata, got %v", md)
	}
}

func TestElements_Empty(t *testing.T) {
	got := Elements("a.md", nil, true)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
