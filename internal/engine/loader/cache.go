package loader

import (
	"sync"

	"github.com/qmuntal/gltf"
)

// documents caches parsed documents so repeated loads (viewer reloads, CLI
// subcommands over the same file) skip disk and decode work. Keyed by
// absolute path. The mutex matters for the browser, whose file dialog runs
// off the render thread.
var documents = docCache{docs: make(map[string]*gltf.Document)}

type docCache struct {
	mu   sync.RWMutex
	docs map[string]*gltf.Document

	// Stats
	hits   int
	misses int
}

func (c *docCache) get(key string) (*gltf.Document, bool) {
	// Exclusive lock: lookups bump the stats.
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return doc, ok
}

func (c *docCache) set(key string, doc *gltf.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[key] = doc
}

func (c *docCache) drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, key)
}

func (c *docCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = make(map[string]*gltf.Document)
	c.hits = 0
	c.misses = 0
}

func (c *docCache) stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// ClearCache drops all cached documents and resets the stats.
func ClearCache() {
	documents.clear()
}

// CacheStats returns document cache hit and miss counts.
func CacheStats() (hits, misses int) {
	return documents.stats()
}
