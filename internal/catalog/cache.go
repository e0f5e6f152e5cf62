package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"storedash/internal/domain"
)

// QueryCache remembers list responses for a short TTL so switching pages
// does not refetch. Mutations invalidate the affected resources.
type QueryCache struct {
	lru *expirable.LRU[domain.Resource, any]
}

// NewQueryCache builds a cache holding at most size entries for ttl. A ttl of
// zero keeps entries until they are invalidated or evicted.
func NewQueryCache(size int, ttl time.Duration) *QueryCache {
	if size <= 0 {
		size = len(domain.AllResources)
	}
	return &QueryCache{lru: expirable.NewLRU[domain.Resource, any](size, nil, ttl)}
}

// Invalidate drops the cached lists for the given resources
func (c *QueryCache) Invalidate(resources ...domain.Resource) {
	if c == nil {
		return
	}
	for _, r := range resources {
		c.lru.Remove(r)
	}
}

// Purge drops everything
func (c *QueryCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len is the number of live entries
func (c *QueryCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cached returns the cached value for key unless fresh is set, otherwise it
// calls fetch and stores a successful result.
func cached[T any](c *QueryCache, key domain.Resource, fresh bool, fetch func() (T, error)) (T, error) {
	if c != nil && !fresh {
		if v, ok := c.lru.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	if c != nil {
		c.lru.Add(key, v)
	}
	return v, nil
}
