package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-memory LRU cache with per-entry TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	config  Config
	entries map[string]*list.Element
	lru     *list.List // front = most recently used
	stats   Stats
	stopCh  chan struct{}
	stopped sync.Once
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiration
}

func (e *memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// NewMemoryCache creates an in-memory cache. A positive CleanupInterval
// starts a background sweeper for expired entries.
func NewMemoryCache(config Config) *MemoryCache {
	c := &MemoryCache{
		config:  config,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		stopCh:  make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.cleanupLoop()
	}
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()
	elem, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if entry.expired() {
		c.removeElement(elem)
		c.stats.Misses++
		return nil, false, nil
	}

	c.lru.MoveToFront(elem)
	c.stats.Hits++
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.config.DefaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = stored
		entry.expiresAt = expiresAt
		c.lru.MoveToFront(elem)
	} else {
		c.entries[key] = c.lru.PushFront(&memoryEntry{key: key, value: stored, expiresAt: expiresAt})
	}
	c.stats.Sets++
	c.stats.LastAccess = time.Now()

	for c.config.MaxEntries > 0 && c.lru.Len() > c.config.MaxEntries {
		c.removeElement(c.lru.Back())
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.removeElement(elem)
	}
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
	return nil
}

func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := c.stats
	stats.Entries = int64(c.lru.Len())
	return stats
}

func (c *MemoryCache) Close() error {
	c.stopped.Do(func() { close(c.stopCh) })
	return nil
}

// removeElement drops one entry; caller holds the write lock.
func (c *MemoryCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*memoryEntry)
	c.lru.Remove(elem)
	delete(c.entries, entry.key)
}

func (c *MemoryCache) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanupExpired()
		}
	}
}

func (c *MemoryCache) cleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memoryEntry).expired() {
			c.removeElement(elem)
		}
		elem = prev
	}
}
