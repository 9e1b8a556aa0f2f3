package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage reads and writes whole files for the editor.
type Storage interface {
	Load(path string) ([]byte, error)
	Save(path string, data []byte) error
}

// FileStorage is Storage on the local file system. A leading "~/" expands
// to the home directory.
type FileStorage struct{}

func (FileStorage) Load(path string) ([]byte, error) {
	return os.ReadFile(expandHome(path))
}

func (FileStorage) Save(path string, data []byte) error {
	path = expandHome(path)
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// MemoryStorage keeps files in a map. It is safe for concurrent use.
type MemoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) Save(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path == "" {
		return errors.New("empty path")
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}
