package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// Store saves named blobs and returns their public URL.
type Store interface {
	Save(name string, data []byte) (string, error)
}

// LocalStore writes blobs under a directory that the web server exposes as
// static files.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Save(name string, data []byte) (string, error) {
	// Strip any path component so names cannot escape the blob directory.
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}
