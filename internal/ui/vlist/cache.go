package vlist

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type rowKey struct {
	key      string
	index    int
	width    int
	selected bool
}

// rowCache keeps recently rendered rows. Its capacity follows the window
// size, never the collection size.
type rowCache struct {
	size  int
	lines *lru.Cache[rowKey, []string]
}

func newRowCache(size int) *rowCache {
	size = max(1, size)
	c, err := lru.New[rowKey, []string](size)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &rowCache{size: size, lines: c}
}

func (c *rowCache) Get(k rowKey) ([]string, bool) {
	return c.lines.Get(k)
}

func (c *rowCache) Add(k rowKey, lines []string) {
	c.lines.Add(k, lines)
}

func (c *rowCache) Resize(size int) {
	size = max(1, size)
	if size == c.size {
		return
	}
	c.size = size
	c.lines.Resize(size)
}

func (c *rowCache) Purge() {
	c.lines.Purge()
}

func (c *rowCache) Len() int {
	return c.lines.Len()
}

func (c *rowCache) Cap() int {
	return c.size
}
