package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ResultWriter writes a scrape result to a single JSON file.
type ResultWriter struct {
	path string
}

// NewResultWriter creates a ResultWriter targeting path.
func NewResultWriter(path string) *ResultWriter {
	return &ResultWriter{path: path}
}

// Path returns the output file path.
func (w *ResultWriter) Path() string {
	return w.path
}

// Write encodes v as indented JSON and replaces the output file with it.
// The file is written next to its destination and renamed into place, so
// readers never see a partial result.
func (w *ResultWriter) Write(v any) (err error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}
