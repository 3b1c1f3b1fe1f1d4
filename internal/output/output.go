// Package output serializes enriched elements to a JSON file.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docsplit/internal/element"
)

// Indent is the per-level indentation of the output document.
const Indent = "    "

// Encode writes elements to w as an indented JSON array. Non-ASCII and HTML
// characters are written literally. A nil collection is written as [].
func Encode(w io.Writer, elements []element.Element) error {
	if elements == nil {
		elements = []element.Element{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(elements); err != nil {
		return fmt.Errorf("encode elements: %w", err)
	}
	return nil
}

// Write replaces the file at path with the encoded elements.
func Write(path string, elements []element.Element) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, elements); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
