package ingest

import (
	"sync"

	"github.com/sprite-ai/daf/internal/model"
)

// Cache memoizes loaded batches by locator. It is owned by the caller
// and passed into a Loader explicitly so tests stay hermetic.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*model.Batch
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*model.Batch)}
}

func (c *Cache) get(locator string) (*model.Batch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[locator]
	return b, ok
}

func (c *Cache) put(locator string, b *model.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[locator] = b
}

// Invalidate drops the given locators from the cache, or everything
// when called with no arguments.
func (c *Cache) Invalidate(locators ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(locators) == 0 {
		c.entries = make(map[string]*model.Batch)
		return
	}
	for _, l := range locators {
		delete(c.entries, l)
	}
}

// Len reports the number of cached locators.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
