package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Files resolves each path into the files to process and returns them as a
// single flat list, in argument order. Directories are walked top-down: a
// directory's own files come first, in lexical order, then each
// subdirectory in lexical order. A symlinked input directory is followed;
// symlinked directories found inside the tree are not. Every file is
// returned regardless of extension. Paths that do not exist are logged and
// contribute nothing.
func Files(log *slog.Logger, paths ...string) ([]string, error) {
	var out []string
	for _, p := range paths {
		files, err := resolve(log, p)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

func resolve(log *slog.Logger, path string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("path not found", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	if err := walkDir(path, &files); err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	return files, nil
}

// walkDir appends the files under dir to files. os.ReadDir follows dir
// itself when it is a symlink.
func walkDir(dir string, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			subdirs = append(subdirs, p)
		case isFile(p, e):
			*files = append(*files, p)
		}
	}
	for _, sub := range subdirs {
		if err := walkDir(sub, files); err != nil {
			return err
		}
	}
	return nil
}

// isFile reports whether the entry is a regular file, following symlinks.
// Dangling links and links to directories are skipped.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
