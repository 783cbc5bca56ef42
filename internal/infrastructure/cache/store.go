// Package cache provides the key-value store the reporting services cache
// generated results and branch settings in. The store is injected explicitly
// and torn down with the application; nothing reads it as an ambient global.
package cache

import (
	"context"
	"time"
)

// Store is a TTL'd byte-value key-value store.
type Store interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value under key for the given TTL. A zero TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the store's resources.
	Close() error
}
