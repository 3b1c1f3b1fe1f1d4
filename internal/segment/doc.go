package segment

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docsplit/internal/element"
)

// DocSegmenter handles legacy binary .doc files by converting them to .docx
// with LibreOffice and segmenting the result.
type DocSegmenter struct{}

func (s *DocSegmenter) Segment(path string, opts Options) ([]element.Raw, error) {
	soffice := opts.SofficePath
	if soffice == "" {
		soffice = "soffice"
	}
	bin, err := exec.LookPath(soffice)
	if err != nil {
		return nil, fmt.Errorf("soffice is required to read %s: %w", path, err)
	}

	tmp, err := os.MkdirTemp("", "docsplit-doc-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	cmd := exec.Command(bin, "--headless", "--convert-to", "docx", "--outdir", tmp, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, invalid(path, Doc, fmt.Errorf("convert to docx: %w: %s", err, strings.TrimSpace(string(out))))
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	converted := filepath.Join(tmp, base+".docx")
	if _, err := os.Stat(converted); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, invalid(path, Doc, errors.New("conversion produced no output"))
		}
		return nil, fmt.Errorf("stat %s: %w", converted, err)
	}

	return segmentDocx(path, converted, Doc, mimeMSWord, opts)
}
