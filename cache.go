package taylor

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes parsed expressions by their source text. It is safe for
// concurrent use. Since an Expr is never modified after parsing, every caller
// parsing the same text shares one tree.
type Cache struct {
	mu    sync.Mutex
	exprs map[uint64]*Expr
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{exprs: make(map[uint64]*Expr)}
}

// Parse returns the cached parse of src, parsing it first if needed. Parse
// errors are not cached.
func (c *Cache) Parse(src string) (*Expr, error) {
	h := xxhash.Sum64String(src)
	c.mu.Lock()
	e := c.exprs[h]
	c.mu.Unlock()
	// A hash collision just means a reparse.
	if e != nil && e.src == src {
		return e, nil
	}
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.exprs[h] = e
	c.mu.Unlock()
	return e, nil
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.exprs)
}
