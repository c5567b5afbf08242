// Package store persists collections state (the imported dataset, global
// parameters and salaries) as JSON documents under well-known keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known state keys.
const (
	KeyDataset    = "dataset"
	KeyParameters = "parameters"
	KeySalaries   = "salaries"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("state not found")

// Store is a key/value store for JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadJSON decodes the value under key into v.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	const op = "LoadJSON"

	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: decode %s: %w", op, key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	const op = "SaveJSON"

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", op, key, err)
	}
	return s.Put(ctx, key, raw)
}
