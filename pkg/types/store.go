package types

import "errors"

// Store is the persistence port of the engine. Values are plain structs,
// serialized by the backend; a Store never interprets them.
// Callers attach to a backend, read and write by key, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach flushes pending writes and releases backend resources.
	// Idempotent: multiple calls succeed.
	Detach() error

	// Get decodes the value stored under key into dst.
	// Returns ErrNotFound if the key has never been written.
	Get(key string, dst any) error

	// Set stores value under key, replacing any previous value.
	Set(key string, value any) error

	// Delete removes the key. Returns ErrNotFound if it does not exist.
	Delete(key string) error

	// Keys lists every stored key in ascending order.
	Keys() ([]string, error)
}

// Store lifecycle and access errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidKey      = errors.New("invalid key")
	ErrInvalidData     = errors.New("invalid entity data")
)
