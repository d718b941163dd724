package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/circulars"
)

// Ensure FileStore implements circulars.PageStore at compile time.
var _ circulars.PageStore = (*FileStore)(nil)

// FileStore implements circulars.PageStore with staged update semantics.
// Pages are saved to a temporary directory, then moved into place on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *FileStore) Save(ctx context.Context, page *circulars.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fileName, err := PageFileName(page)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	content, err := FormatPage(page)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), fileName), []byte(content), 0644)
}

// Commit moves the pages saved so far into the final directory, replacing
// files of the same name. Pages from earlier runs that were not saved again
// are kept, since a run reuses archived circulars without rewriting them.
func (s *FileStore) Commit() error {
	entries, err := os.ReadDir(s.tempDir())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.finalDir(), 0755); err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Rename(filepath.Join(s.tempDir(), e.Name()), filepath.Join(s.finalDir(), e.Name())); err != nil {
			return err
		}
	}

	return os.RemoveAll(s.tempDir())
}

func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
