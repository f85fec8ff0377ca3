// Package memory implements an in-process types.Store. Values are kept as
// encoded JSON so callers get the same copy semantics as the SQLite backend.
package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store is a map-backed types.Store. The zero value is detached.
type Store struct {
	mu       sync.RWMutex
	attached bool
	data     map[string][]byte
}

// NewStore creates a detached store.
func NewStore() *Store {
	return &Store{}
}

// Attach validates config and starts an empty store.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	s.data = make(map[string][]byte)
	s.attached = true
	return nil
}

// Detach drops all data. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attached = false
	s.data = nil
	return nil
}

// Get decodes the value under key into dst.
func (s *Store) Get(key string, dst any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check(key); err != nil {
		return err
	}
	raw, ok := s.data[key]
	if !ok {
		return types.ErrNotFound
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", types.ErrInvalidData, key, err)
	}
	return nil
}

// Set stores value under key.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(key); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", types.ErrInvalidData, key, err)
	}
	s.data[key] = raw
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(key); err != nil {
		return err
	}
	if _, ok := s.data[key]; !ok {
		return types.ErrNotFound
	}
	delete(s.data, key)
	return nil
}

// Keys lists stored keys in ascending order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) check(key string) error {
	if !s.attached {
		return types.ErrStoreDetached
	}
	if strings.TrimSpace(key) == "" {
		return types.ErrInvalidKey
	}
	return nil
}
