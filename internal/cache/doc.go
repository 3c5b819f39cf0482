// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, []uint32](16)
//	words, err := c.GetOrCreate("pulse", compile)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
