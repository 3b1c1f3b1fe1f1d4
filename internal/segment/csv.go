package segment

import (
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/dgallion1/docsplit/internal/element"
)

// CSVSegmenter handles CSV files. The whole file becomes one Table element.
type CSVSegmenter struct{}

func (s *CSVSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, invalid(path, CSV, fmt.Errorf("parse csv: %w", err))
	}
	if len(records) == 0 {
		return nil, nil
	}

	var text strings.Builder
	var table strings.Builder
	table.WriteString("<table>")
	for i, row := range records {
		if i > 0 {
			text.WriteString("\n")
		}
		text.WriteString(strings.Join(row, " "))

		cell := "td"
		if i == 0 {
			cell = "th"
		}
		table.WriteString("<tr>")
		for _, c := range row {
			fmt.Fprintf(&table, "<%s>%s</%s>", cell, html.EscapeString(c), cell)
		}
		table.WriteString("</tr>")
	}
	table.WriteString("</table>")

	md := newMetaFactory(path, "text/csv", opts, opts.includeMetadata(true))()
	if md != nil {
		md.TextAsHTML = table.String()
	}

	raws := []element.Raw{{
		Text:     text.String(),
		Category: element.CategoryTable,
		Metadata: md,
	}}
	assignIDs(path, raws)
	return raws, nil
}
