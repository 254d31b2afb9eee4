// Package storage keeps uploaded answer sheets and rubrics on disk, keyed
// by submission id, so a grading can be re-run or audited later.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Path(key string) string // local path, for tools that need a file on disk
}

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	return os.Open(s.Path(key))
}

// Path maps a key to its on-disk location. The OCR binaries want real file
// paths, not readers.
func (s *FSStore) Path(key string) string {
	return filepath.Join(s.base, filepath.Clean(key))
}
