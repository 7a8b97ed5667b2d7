package save

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
)

// DefaultPath is where the record lives when no path is configured.
const DefaultPath = "save.json"

// FileBackend stores the record as a JSON file. A sibling .lock file
// serialises readers and writers of the same record, across keepers and
// processes alike (two SSH sessions of one user, or a second terminal).
type FileBackend struct {
	path string
	lock *flock.Flock
}

// NewFileBackend returns a backend for path, or DefaultPath if empty.
func NewFileBackend(path string) *FileBackend {
	if path == "" {
		path = DefaultPath
	}
	path = filepath.Clean(path)
	return &FileBackend{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the file location.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) String() string {
	return b.path
}

// Read returns the file contents, or ErrNotFound if the file does not exist.
func (b *FileBackend) Read() ([]byte, error) {
	if _, err := os.Stat(b.path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err := b.lock.RLock(); err != nil {
		return nil, err
	}
	defer b.lock.Unlock()

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the file atomically: readers see the old record or the new
// one, never a partial write.
func (b *FileBackend) Write(data []byte) error {
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := b.lock.Lock(); err != nil {
		return err
	}
	defer b.lock.Unlock()

	return renameio.WriteFile(b.path, data, 0o644)
}
