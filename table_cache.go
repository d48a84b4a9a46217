package bitrans

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
)

// TableCache provides thread-safe caching of compiled tables for
// long-running applications. The cache uses a simple LRU eviction
// policy when the maximum size is reached.
//
// Key Generation Strategy:
// - File paths: Used directly as keys (assumes paths uniquely identify table content)
// - Byte data: SHA256 hash ensures identical content gets same cache entry
// - Hash prefix "sha256:" distinguishes content-based keys from path-based keys
//
// LRU Policy:
// - Every cache hit moves the entry to the front of the LRU list
// - When the cache is full, the tail (least recently used) entry is evicted
type TableCache struct {
	mu        sync.RWMutex
	tables    map[string]*cacheEntry
	lru       *lruList
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key     string
	table   *Table
	size    int64 // Approximate memory size in bytes
	lruNode *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
	size int
}

// Global default cache for convenience
var defaultCache = NewTableCache(100)

// NewTableCache creates a new table cache with the specified maximum
// number of tables. A maxSize of 0 or negative means unlimited size.
func NewTableCache(maxSize int) *TableCache {
	return &TableCache{
		tables:  make(map[string]*cacheEntry),
		lru:     &lruList{},
		maxSize: maxSize,
	}
}

// LoadTableCached loads a rules file from the filesystem through the
// default cache. This is safe for concurrent use.
func LoadTableCached(path string) (*Table, error) {
	return defaultCache.LoadTable(path)
}

// LoadTable loads a rules file from the filesystem with caching.
// This method is safe for concurrent use.
func (c *TableCache) LoadTable(path string) (*Table, error) {
	if table := c.get(path); table != nil {
		return table, nil
	}

	table, err := LoadTable(path)
	if err != nil {
		c.misses.Add(1)
		return nil, err
	}

	c.put(path, table)
	return table, nil
}

// ParseTableCached compiles a rules file from byte data through the
// default cache. The cache key is derived from the SHA256 hash of the
// data. This function is safe for concurrent use.
func ParseTableCached(data []byte) (*Table, error) {
	return defaultCache.ParseTable(data)
}

// ParseTable compiles a rules file from byte data with caching.
// Identical content gets cached once regardless of source; the
// "sha256:" prefix keeps content keys from colliding with path keys.
// This method is safe for concurrent use.
func (c *TableCache) ParseTable(data []byte) (*Table, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])

	if table := c.get(key); table != nil {
		return table, nil
	}

	table, err := ParseTableBytes(data)
	if err != nil {
		c.misses.Add(1)
		return nil, err
	}

	c.put(key, table)
	return table, nil
}

// get retrieves a table from the cache using optimized locking:
// an RLock existence check first so cache hits from multiple
// goroutines don't serialize, then a full Lock only to update the
// LRU position.
func (c *TableCache) get(key string) *Table {
	c.mu.RLock()
	entry, exists := c.tables[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	c.lru.moveToFront(entry.lruNode)
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.table
}

// put adds a table to the cache with automatic LRU eviction.
func (c *TableCache) put(key string, table *Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[key]; exists {
		return
	}

	if c.maxSize > 0 && len(c.tables) >= c.maxSize {
		c.evictLRU()
	}

	node := c.lru.pushFront(key)
	c.tables[key] = &cacheEntry{
		key:     key,
		table:   table,
		size:    estimateTableSize(table),
		lruNode: node,
	}
}

// evictLRU removes the least recently used table from the cache
func (c *TableCache) evictLRU() {
	if c.lru.tail == nil {
		return
	}

	key := c.lru.tail.key
	delete(c.tables, key)
	c.lru.remove(c.lru.tail)
	c.evictions.Add(1)
}

// Clear removes all tables from the cache.
// This method is safe for concurrent use.
func (c *TableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables = make(map[string]*cacheEntry)
	c.lru = &lruList{}
}

// Stats returns cache statistics.
// This method is safe for concurrent use.
func (c *TableCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.tables)
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached tables
	MaxSize   int    // Maximum cache size
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateTableSize estimates the memory size of a compiled table in
// bytes. The estimation favors speed over accuracy: pattern data plus
// rough per-slice and per-entry overheads, enough for LRU eviction
// decisions but not a substitute for real profiling.
func estimateTableSize(t *Table) int64 {
	if t == nil {
		return 0
	}

	// Base struct size
	size := int64(100)

	for i := range t.entries {
		size += int64(len(t.entries[i].Key) + len(t.entries[i].Value))
	}
	for i := range t.inputs {
		size += int64(4 * (len(t.inputs[i]) + len(t.outputs[i])))
		size += 48 // slice headers
	}
	size += int64(8 * len(t.order))
	size += int64(len(t.alphabet) * 16)

	return size
}

// LRU list operations
func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}

	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	l.size++
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == l.head {
		return
	}

	// Remove from current position
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}

	// Move to front
	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}

func (l *lruList) remove(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	l.size--
}

// SetDefaultCacheSize sets the maximum size of the default cache.
// This should be called once at application startup.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewTableCache(maxSize)
}

// ClearDefaultCache clears the default table cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
