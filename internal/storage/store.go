package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// ErrCorruptRecord is returned by BlockedSlot.Load when the stored value
// is not a valid record. The value is still present in the store.
var ErrCorruptRecord = errors.New("storage: corrupt blocked analysis")

// Store is a key-value store scoped to SafeLink.
// Implementations must be safe for concurrent use. A Set on an existing key
// overwrites the previous value; Remove on a missing key is not an error.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Timestamped is implemented by stores that record when each key was last
// written. MemoryStore and SQLiteStore implement it.
type Timestamped interface {
	// UpdatedAt returns the time of the last Set of key, or ErrNotFound.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}
