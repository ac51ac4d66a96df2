// Package shopcache caches known shop names for billing suggestions. The
// source app kept these in ambient local-device storage; here the cache is an
// explicit dependency injected into its consumers.
package shopcache

import (
	"sync"
	"time"
)

// Provider supplies known shop names, most recently used first.
type Provider interface {
	Known(limit int) ([]string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(limit int) ([]string, error)

func (f ProviderFunc) Known(limit int) ([]string, error) { return f(limit) }

// Cached wraps a Provider with a TTL memory cache. Safe for concurrent use.
type Cached struct {
	inner Provider
	ttl   time.Duration

	mu        sync.RWMutex
	names     []string
	fetchedAt time.Time
}

// NewCached builds a cache over the provider. A non-positive ttl disables
// caching and every read hits the provider.
func NewCached(inner Provider, ttl time.Duration) *Cached {
	return &Cached{inner: inner, ttl: ttl}
}

// Known returns the cached names, refreshing from the provider when stale.
func (c *Cached) Known(limit int) ([]string, error) {
	c.mu.RLock()
	if c.ttl > 0 && time.Since(c.fetchedAt) < c.ttl && c.names != nil {
		names := c.names
		c.mu.RUnlock()
		return names, nil
	}
	c.mu.RUnlock()

	names, err := c.inner.Known(limit)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.names = names
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return names, nil
}

// Invalidate drops the cached names; the next read refreshes. Called after a
// sale records a (possibly new) shop name.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.names = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
