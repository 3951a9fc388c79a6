package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"docrag/internal/domain"
)

// QueryCache memoizes retrieval results per (question, k) within one
// process. It lives only in memory; a new document invalidates every entry
// through the generation counter, so stale evidence can never leak across
// ingestions. Eviction is least-recently-used.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
	maxSize int
	gen     uint64
}

type entry struct {
	results []domain.RetrievalResult
	gen     uint64
}

// New creates a cache holding at most maxSize entries.
func New(maxSize int) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &QueryCache{
		entries: make(map[string]*entry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func key(question string, k int) string {
	data := []byte(question)
	data = append(data, byte(k>>8), byte(k))
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// Get returns the cached results for (question, k) if present and written
// against the current document generation.
func (c *QueryCache) Get(question string, k int) ([]domain.RetrievalResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := key(question, k)
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if e.gen != c.gen {
		delete(c.entries, id)
		c.removeFromOrder(id)
		return nil, false
	}
	c.moveToEnd(id)
	return e.results, true
}

// Put stores results for (question, k), evicting the least recently used
// entry when full.
func (c *QueryCache) Put(question string, k int, results []domain.RetrievalResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := key(question, k)
	if _, ok := c.entries[id]; ok {
		c.entries[id] = &entry{results: results, gen: c.gen}
		c.moveToEnd(id)
		return
	}

	if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = &entry{results: results, gen: c.gen}
	c.order = append(c.order, id)
}

// Invalidate drops every entry. Called when a new document replaces the
// (chunks, index) pair.
func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.order = c.order[:0]
	c.gen++
}

// Size returns the number of live entries.
func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) moveToEnd(id string) {
	c.removeFromOrder(id)
	c.order = append(c.order, id)
}

func (c *QueryCache) removeFromOrder(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
