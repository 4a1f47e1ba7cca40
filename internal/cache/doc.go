// Package cache provides a small generic LRU cache used to memoize text
// measurements.
//
//	c := cache.New[string, float64](512)
//	w := c.GetOrCreate("Hello", measure)
package cache
