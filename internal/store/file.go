package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"collections/internal/logger"
	"github.com/rs/zerolog"
)

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// FileStore keeps one JSON file per key in a directory.
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	const op = "NewFileStore"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: create data dir: %w", op, err)
	}
	return &FileStore{dir: dir, log: logger.WithComponent("file-store")}, nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	const op = "FileStore.Get"

	path, err := s.path(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", op, key, err)
	}
	return raw, nil
}

// Put implements Store. The file is replaced atomically.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	const op = "FileStore.Put"

	path, err := s.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%s: create temp file: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: write %s: %w", op, key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: close %s: %w", op, key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: replace %s: %w", op, key, err)
	}

	s.log.Debug().Str("key", key).Int("bytes", len(value)).Msg("State saved")
	return nil
}

// Delete implements Store. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	const op = "FileStore.Delete"

	path, err := s.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: remove %s: %w", op, key, err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
