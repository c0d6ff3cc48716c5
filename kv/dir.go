package kv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirStore is a Store that keeps one file per key inside a directory. Keys
// are sanitized into file names; values are written atomically enough for a
// single local user (write then rename is not attempted, a short-lived CLI
// does not need it).
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed and returns a store over it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{dir: dir}, nil
}

// fileName maps a key to a file path. Colons are common in keys
// ("hedgebook:v1:0xabc") and are not portable file name characters.
func (s *DirStore) fileName(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *DirStore) Get(key string) (string, bool) {
	raw, err := os.ReadFile(s.fileName(key))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (s *DirStore) Set(key, value string) error {
	return os.WriteFile(s.fileName(key), []byte(value), 0o644)
}

func (s *DirStore) Delete(key string) error {
	err := os.Remove(s.fileName(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
