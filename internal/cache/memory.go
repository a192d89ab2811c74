package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
)

type memoryEntry struct {
	items     []models.Item
	expiresAt time.Time
}

// MemorySearchCache is the in-process fallback search cache.
type MemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemorySearchCache) Get(ctx context.Context, text string) ([]models.Item, bool) {
	c.mu.RLock()
	entry, ok := c.entries[text]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.items, true
}

func (c *MemorySearchCache) Set(ctx context.Context, text string, items []models.Item) {
	c.mu.Lock()
	c.entries[text] = memoryEntry{items: items, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *MemorySearchCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}
