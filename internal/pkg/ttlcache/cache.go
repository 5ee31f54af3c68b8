package ttlcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size and time bounded key-value store safe for concurrent use.
// Entries past their TTL read as absent even before the background purge runs.
type Cache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

func New[K comparable, V any](maxEntries int, ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		lru: expirable.NewLRU[K, V](maxEntries, nil, ttl),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Set overwrites any existing entry and resets its TTL. Racing writers on the
// same key resolve last-writer-wins.
func (c *Cache[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

func (c *Cache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}

func (c *Cache[K, V]) Clear() {
	c.lru.Purge()
}

func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}
