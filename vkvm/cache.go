package vkvm

import "github.com/archlab/cmdvm/internal/option"

// Cache tracks the one piece of replay state worth deduplicating on
// the Vulkan side: the last pipeline bound via IndirectBindPipeline.
// Direct BindPipeline records are never deduplicated — callers that
// want caching always route pipeline binds through the indirect form.
type Cache struct {
	lastPipeline option.Value[uintptr]
	removed      int
}

// NewCache returns a Cache with no pipeline bound.
func NewCache() *Cache { return &Cache{} }

// Removed reports how many IndirectBindPipeline replays this cache has
// suppressed as redundant since it was created.
func (c *Cache) Removed() int { return c.removed }

// shouldBindPipeline reports whether pipeline differs from the last
// one bound through this cache, recording it either way.
func (c *Cache) shouldBindPipeline(pipeline uintptr) bool {
	if !c.lastPipeline.Set(pipeline) {
		c.removed++
		return false
	}
	return true
}
