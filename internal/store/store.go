package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a persistent key-value adapter. Every collection of the engine is
// a single JSON document stored under a fixed key. Callers treat a failed
// Get as "absent" and a failed Set/Remove as "operation did not happen".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
