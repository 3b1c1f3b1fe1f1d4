package segment

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/docsplit/internal/element"
	"github.com/dgallion1/docsplit/internal/tokenize"
)

// HTMLSegmenter handles HTML files.
type HTMLSegmenter struct{}

func (s *HTMLSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return segmentHTML(path, data, HTML, "text/html", opts)
}

var htmlPolicy = bluemonday.UGCPolicy()

// segmentHTML turns an HTML document into elements, one per block. Every
// element keeps the tag name of the block it came from.
func segmentHTML(path string, data []byte, t Type, filetype string, opts Options) ([]element.Raw, error) {
	if opts.Sanitize {
		data = htmlPolicy.SanitizeBytes(data)
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, invalid(path, t, fmt.Errorf("parse html: %w", err))
	}

	w := &htmlWalker{
		tok:  opts.tokenizer(),
		meta: newMetaFactory(path, filetype, opts, opts.includeMetadata(false)),
	}
	w.container(doc)

	assignIDs(path, w.out)
	return w.out, nil
}

type htmlWalker struct {
	tok  *tokenize.Tokenizer
	meta metaFactory
	out  []element.Raw
}

var skipAtoms = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true,
	atom.Head: true, atom.Template: true, atom.Iframe: true,
}

// blockAtoms are elements that start a new element when encountered.
var blockAtoms = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Main: true, atom.Div: true,
	atom.Section: true, atom.Article: true, atom.Aside: true, atom.Nav: true,
	atom.Header: true, atom.Footer: true, atom.Form: true, atom.Fieldset: true,
	atom.Details: true, atom.Summary: true, atom.Figure: true, atom.Figcaption: true,
	atom.Address: true, atom.Center: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.P: true, atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Table: true,
}

func (w *htmlWalker) walk(n *html.Node) {
	if n.Type != html.ElementNode {
		return
	}
	if skipAtoms[n.DataAtom] {
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		md := w.meta()
		if md != nil {
			md.CategoryDepth = element.Depth(int(n.Data[1] - '1'))
		}
		w.emit(n, textContent(n), element.CategoryTitle, md)

	case atom.P, atom.Blockquote, atom.Dt, atom.Dd, atom.Figcaption, atom.Summary, atom.Address:
		if hasBlockDescendant(n) {
			w.container(n)
			return
		}
		text := textContent(n)
		w.emit(n, text, classify(text, w.tok), w.meta())

	case atom.Li:
		w.listItem(n)

	case atom.Table:
		md := w.meta()
		if md != nil {
			var buf bytes.Buffer
			if err := html.Render(&buf, n); err == nil {
				md.TextAsHTML = buf.String()
			}
		}
		w.emit(n, tableText(n), element.CategoryTable, md)

	case atom.Pre:
		w.emit(n, strings.Trim(rawText(n), "\n"), element.CategoryCodeSnippet, w.meta())

	case atom.Hr:
		return

	default:
		w.container(n)
	}
}

// container handles an element that may mix inline content with blocks.
// Consecutive inline content is collected into its own element.
func (w *htmlWalker) container(n *html.Node) {
	if n.Type == html.ElementNode && !hasBlockDescendant(n) {
		text := textContent(n)
		w.emit(n, text, classify(text, w.tok), w.meta())
		return
	}

	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		var sb strings.Builder
		for _, c := range run {
			collectText(c, &sb)
		}
		text := normalizeSpace(sb.String())
		w.emit(n, text, classify(text, w.tok), w.metaWithLinks(run...))
		run = run[:0]
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			run = append(run, c)
		case c.Type == html.ElementNode && skipAtoms[c.DataAtom]:
		case c.Type == html.ElementNode && (isBlock(c) || hasBlockDescendant(c)):
			flush()
			w.walk(c)
		case c.Type == html.ElementNode:
			run = append(run, c)
		}
	}
	flush()
}

// listItem emits the item's own text; nested lists become their own items.
func (w *htmlWalker) listItem(n *html.Node) {
	var sb strings.Builder
	var nested []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
			nested = append(nested, c)
			continue
		}
		collectText(c, &sb)
	}
	w.emit(n, normalizeSpace(sb.String()), element.CategoryListItem, w.metaWithLinks(n))
	for _, l := range nested {
		w.walk(l)
	}
}

func (w *htmlWalker) emit(n *html.Node, text, category string, md *element.Metadata) {
	if text == "" {
		return
	}
	if md != nil && md.LinkURLs == nil {
		md.LinkURLs = linkURLs(n)
	}
	tag := ""
	if n.Type == html.ElementNode {
		tag = n.Data
	}
	w.out = append(w.out, element.Raw{
		Text:     text,
		Tag:      tag,
		Category: category,
		Metadata: md,
	})
}

func (w *htmlWalker) metaWithLinks(nodes ...*html.Node) *element.Metadata {
	md := w.meta()
	if md == nil {
		return nil
	}
	// Non-nil so emit does not collect links from the whole container.
	md.LinkURLs = []string{}
	for _, n := range nodes {
		md.LinkURLs = append(md.LinkURLs, linkURLs(n)...)
	}
	return md
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || skipAtoms[c.DataAtom] {
			continue
		}
		if isBlock(c) || hasBlockDescendant(c) {
			return true
		}
	}
	return false
}

// textContent returns the visible text of n with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return normalizeSpace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		sb.WriteString(n.Data)
		return
	case n.Type == html.ElementNode && skipAtoms[n.DataAtom]:
		return
	case n.Type == html.ElementNode && n.DataAtom == atom.Br:
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if isBlock(n) {
		sb.WriteByte(' ')
	}
}

// rawText returns the text of n with whitespace preserved.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// tableText renders a table as one line per row, cells separated by spaces.
func tableText(n *html.Node) string {
	var rows []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					if t := textContent(c); t != "" {
						cells = append(cells, t)
					}
				}
			}
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(rows, "\n")
}

func linkURLs(n *html.Node) []string {
	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			for _, a := range n.Attr {
				if a.Key == "href" && a.Val != "" {
					urls = append(urls, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return urls
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
