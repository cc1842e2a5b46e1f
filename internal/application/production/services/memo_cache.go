package services

import "sync"

// memoKey identifies one memoized resolution. The open path is part of the key
// because the same item resolves differently depending on which ancestors are
// open (that decides where cycles get cut).
type memoKey struct {
	item       string
	treatAsRaw bool
	path       string
}

// MemoCache holds memoized per-item results for a single top-level generation.
//
// The cache is owned by the caller and is cleared at the start of every
// Generate call, so results never leak between targets or raw-override settings.
// A cache must not be shared by concurrent Generate calls.
type MemoCache struct {
	mu      sync.Mutex
	entries map[memoKey][]branch
	hits    int
	misses  int
}

// NewMemoCache creates an empty cache
func NewMemoCache() *MemoCache {
	return &MemoCache{
		entries: make(map[memoKey][]branch),
	}
}

// Reset drops every entry and zeroes the counters
func (c *MemoCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[memoKey][]branch)
	c.hits = 0
	c.misses = 0
}

// Len returns the number of memoized resolutions
func (c *MemoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Hits returns how many lookups were served from the cache since the last Reset
func (c *MemoCache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func (c *MemoCache) get(key memoKey) ([]branch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return result, ok
}

func (c *MemoCache) put(key memoKey, result []branch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
}
