package api

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Save streams dl into dir under its recovered filename and closes the body.
// The bytes land in a temp file first which is renamed once complete, so an
// interrupted download never leaves a half-written spreadsheet behind. An
// existing file is not overwritten; a " (n)" suffix is added instead.
func (dl *Download) Save(dir string) (string, error) {
	defer dl.Body.Close()
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("export temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := io.Copy(tmp, dl.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("export write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export write: %w", err)
	}

	dst, err := freeName(dir, dl.Filename)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("export rename: %w", err)
	}
	return dst, nil
}

func freeName(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		cand := name
		if i > 0 {
			cand = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		p := filepath.Join(dir, cand)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}
