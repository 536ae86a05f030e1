package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache and prefixes every key, isolating entries from
// other users of the same backing store. The CLI scopes its file cache by
// resolved host so responses from different deployments never mix.
//
// Example usage:
//
//	fc, _ := cache.NewFileCache(dir)
//	scoped := cache.NewScoped(fc, "https://news.example.com|")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped wraps inner so all keys gain the given prefix.
// Prefixes compose: scoping an already scoped cache concatenates them.
func NewScoped(inner Cache, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves the value stored under the prefixed key.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores data under the prefixed key.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes the prefixed key.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the underlying cache.
func (c *Scoped) Close() error { return c.inner.Close() }

// Ensure Scoped implements Cache.
var _ Cache = (*Scoped)(nil)
