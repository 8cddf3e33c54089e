package resolver

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/fieldref/layout"
)

// Cache memoizes resolvers per (type, signature). Safe for concurrent use.
type Cache struct {
	m sync.Map // reflect.Type -> *cacheEntry
}

// cacheEntry is immutable; updates swap in a new entry.
type cacheEntry struct {
	resolvers []*Resolver
}

func (e *cacheEntry) find(sig layout.Signature) *Resolver {
	for _, r := range e.resolvers {
		if r.sig.Equal(sig) {
			return r
		}
	}
	return nil
}

func NewCache() *Cache {
	return &Cache{}
}

// Resolve returns the cached resolver for (t, sig), binding it on first use.
func (c *Cache) Resolve(t reflect.Type, sig layout.Signature) (*Resolver, error) {
	if cur, ok := c.m.Load(t); ok {
		if r := cur.(*cacheEntry).find(sig); r != nil {
			return r, nil
		}
	}

	r, err := New(t, sig)
	if err != nil {
		return nil, err
	}
	Logger().Debug("resolver cache miss", zap.Stringer("type", t))

	for {
		cur, loaded := c.m.LoadOrStore(t, &cacheEntry{resolvers: []*Resolver{r}})
		if !loaded {
			return r, nil
		}
		entry := cur.(*cacheEntry)
		if existing := entry.find(sig); existing != nil {
			return existing, nil
		}
		next := &cacheEntry{resolvers: make([]*Resolver, len(entry.resolvers), len(entry.resolvers)+1)}
		copy(next.resolvers, entry.resolvers)
		next.resolvers = append(next.resolvers, r)
		if c.m.CompareAndSwap(t, entry, next) {
			return r, nil
		}
	}
}

// Len returns the number of cached resolvers.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, v any) bool {
		n += len(v.(*cacheEntry).resolvers)
		return true
	})
	return n
}
