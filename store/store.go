// Package store persists the tracker snapshot in a key-value store.
//
// The Adapter turns every storage failure into a logged, recovered event:
// loading never fails (the default snapshot is substituted) and a failed save
// leaves the caller's in-memory state untouched.
package store

import (
	"context"
	"errors"
)

// DefaultKey is the name of the snapshot record.
const DefaultKey = "investmentApp_v4"

var (
	// ErrNotFound is returned by a KV when the key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by a KV that refuses a write for lack of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// KV is a durable key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
