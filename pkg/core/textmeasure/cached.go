package textmeasure

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/umlkit/pkg/core/geom"
)

// DefaultCacheSize is the number of entries kept by NewCached when size <= 0.
const DefaultCacheSize = 4096

type cacheKey struct {
	font Font
	text string
}

// Cached memoizes another measurer. It is safe for concurrent use when the
// wrapped measurer is.
type Cached struct {
	next  Measurer
	cache *lru.Cache[cacheKey, geom.Dimension]
}

// NewCached wraps next with an LRU cache holding up to size entries.
func NewCached(next Measurer, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, geom.Dimension](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

// Measure implements [Measurer].
func (c *Cached) Measure(f Font, text string) geom.Dimension {
	key := cacheKey{font: f, text: text}
	if d, ok := c.cache.Get(key); ok {
		return d
	}
	d := c.next.Measure(f, text)
	c.cache.Add(key, d)
	return d
}

// Len returns the number of cached entries.
func (c *Cached) Len() int { return c.cache.Len() }
