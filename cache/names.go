package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultNamesSize bounds the number of distinct column names remembered.
const DefaultNamesSize = 4096

// Names memoizes a string transform, typically column name normalization.
// It is safe for concurrent use; the underlying LRU carries its own lock.
type Names struct {
	cache *lru.Cache[string, string]
	fn    func(string) string
}

func NewNames(size int, fn func(string) string) *Names {
	if size <= 0 {
		size = DefaultNamesSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, string](size)
	return &Names{cache: cache, fn: fn}
}

// Get returns fn(name), computing it at most once while name stays cached.
func (n *Names) Get(name string) string {
	if v, ok := n.cache.Get(name); ok {
		return v
	}
	v := n.fn(name)
	n.cache.Add(name, v)
	return v
}

// Len returns the number of cached names.
func (n *Names) Len() int {
	return n.cache.Len()
}

// Purge drops every cached name.
func (n *Names) Purge() {
	n.cache.Purge()
}
