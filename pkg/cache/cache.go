// Package cache provides the response cache backends used by the NewsHub
// client and CLI.
//
// All backends implement the Cache interface: opaque byte values keyed by
// strings, each entry carrying its own time-to-live. Four implementations
// are provided:
//
//   - MemoryCache: process-local map, the library default
//   - FileCache: file-per-entry store, used by the short-lived CLI process
//   - RedisCache: shared cache for multi-process deployments
//   - NullCache: disables caching entirely
//
// Use [Scoped] to prefix keys when several consumers share one backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with per-entry expiry.
//
// Implementations must be safe for concurrent use. A (nil, false, nil)
// return from Get means the key is absent or expired; errors are reserved
// for backend failures (I/O, network).
type Cache interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key with the given time-to-live.
	// A ttl of zero or less means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
