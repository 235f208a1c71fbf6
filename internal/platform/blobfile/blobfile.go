// Package blobfile implements the store.Provider contract on the local
// filesystem: each document key maps to one JSON file, and writes replace
// the whole file atomically via a temp-file rename. A failed write never
// clobbers the previous document, which keeps the store's "corrupt data is
// left for forensics" recovery rule meaningful.
package blobfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/moodlog/internal/store"
)

// Store is a file-backed key/value byte-blob store.
type Store struct {
	dir    string
	logger *slog.Logger
}

// Ensure Store implements the store.Provider interface
var _ store.Provider = (*Store)(nil)

// New creates a blob store rooted at dir, creating the directory if needed.
// If logger is nil, the default logger is used.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("blobfile: dir cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blobfile: creating data dir: %w", err)
	}

	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "blobfile")),
	}, nil
}

// Get reads the document stored under key.
// Returns store.ErrKeyNotFound when no document exists.
func (s *Store) Get(key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrKeyNotFound
		}
		return nil, fmt.Errorf("blobfile: reading %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the document stored under key: the data is written
// to a temporary file in the same directory and renamed over the target.
func (s *Store) Set(key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("blobfile: creating temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("blobfile: writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("blobfile: closing temp file for %s: %w", key, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("blobfile: replacing %s: %w", key, err)
	}

	s.logger.Debug("document written",
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	return nil
}

// path maps a document key to its file, rejecting keys that would escape
// the data directory.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("blobfile: invalid document key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
