package suggest

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes ranked results per query.
// It is safe for concurrent use; callers receive copies.
type Cache struct {
	lru    *lru.Cache[string, []Ranked]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache holding up to size queries.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = 128
	}
	c, err := lru.New[string, []Ranked](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Cache{lru: c}
}

// Get returns a copy of the results cached for query.
func (c *Cache) Get(query string) ([]Ranked, bool) {
	results, ok := c.lru.Get(query)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return copyRanked(results), true
}

// Add stores a copy of results for query.
func (c *Cache) Add(query string, results []Ranked) {
	c.lru.Add(query, copyRanked(results))
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Hits returns the number of successful lookups.
func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of failed lookups.
func (c *Cache) Misses() int64 {
	return c.misses.Load()
}

func copyRanked(in []Ranked) []Ranked {
	if in == nil {
		return nil
	}
	out := make([]Ranked, len(in))
	copy(out, in)
	return out
}
