// Package cachemanager provides a typed in-memory cache.
package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = 10 * time.Minute
	// NoExpiration marks entries that never expire.
	NoExpiration = gocache.NoExpiration
)

// CacheManager is a typed key/value cache.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
}

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	cache *gocache.Cache
}

// NewInMemoryCacheManager creates an empty cache.
func NewInMemoryCacheManager[K ~string, V any](defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value for key. Values of the wrong type count as misses.
func (m *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	raw, ok := m.cache.Get(string(key))
	if !ok {
		return zero, false
	}
	value, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return value, true
}

// Set stores value under key for ttl.
func (m *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	m.cache.Set(string(key), value, ttl)
}
