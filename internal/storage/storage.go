// Package storage is the key/value persistence used for cart and customization
// state. Values are JSON encoded. Failures are logged and reported as false so
// callers carry on with in-memory defaults.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

var ErrNotFound = errors.New("storage: key not found")

// Backend stores raw payloads by key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Adapter is the get/set/remove/has surface consumed by the stores.
type Adapter interface {
	// Get decodes the value stored at key into dst. It reports false when the
	// key is absent, the payload is malformed or the backend failed.
	Get(key string, dst any) bool
	Set(key string, value any) bool
	Remove(key string) bool
	Has(key string) bool
}

// GetOr returns the stored value for key, or def when it cannot be read.
func GetOr[T any](a Adapter, key string, def T) T {
	if a == nil {
		return def
	}
	var v T
	if !a.Get(key, &v) {
		return def
	}
	return v
}

type Store struct {
	backend Backend
	timeout time.Duration
}

func New(backend Backend, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{backend: backend, timeout: timeout}
}

func (s *Store) Get(key string, dst any) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.backend.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Error reading from storage for key %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("Error decoding stored value for key %q: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Set(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error encoding value for key %q: %v", key, err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.backend.Save(ctx, key, data); err != nil {
		log.Printf("Error writing to storage for key %q: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Remove(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("Error removing from storage for key %q: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Has(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, err := s.backend.Load(ctx, key)
	return err == nil
}
