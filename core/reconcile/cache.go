package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrUnavailable marks a lookup against an optional index that failed to load.
var ErrUnavailable = errors.New("reference data unavailable")

// Index maps a folded natural key to a reference value.
type Index map[string]any

// Put stores v under the key built from parts. The first value for a key wins.
func (ix Index) Put(v any, parts ...string) {
	k := Key(parts...)
	if k == "" {
		return
	}
	if _, exists := ix[k]; !exists {
		ix[k] = v
	}
}

// Loader loads one reference index for a batch.
type Loader struct {
	// Name is the index name rows look values up in.
	Name string
	// Required loaders abort the whole batch when they fail.
	// Optional loaders only fail the rows that consult them.
	Required bool
	Load     func(ctx context.Context, db *gorm.DB) (Index, error)
}

// Cache holds the reference indices of one batch run. It is read-only once built.
type Cache struct {
	indexes map[string]Index
	failed  map[string]error
}

// NewCache builds a cache from ready indices.
func NewCache(indexes map[string]Index) *Cache {
	if indexes == nil {
		indexes = make(map[string]Index)
	}
	return &Cache{indexes: indexes, failed: make(map[string]error)}
}

// BuildCache runs every loader concurrently and assembles the batch cache.
func BuildCache(ctx context.Context, db *gorm.DB, loaders []Loader) (*Cache, error) {
	cache := NewCache(nil)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, loader := range loaders {
		g.Go(func() error {
			ix, err := loader.Load(gctx, db)
			if err != nil {
				if loader.Required {
					return fmt.Errorf("load %s: %w", loader.Name, err)
				}
				mu.Lock()
				cache.failed[loader.Name] = err
				mu.Unlock()
				return nil
			}
			if ix == nil {
				ix = Index{}
			}
			mu.Lock()
			cache.indexes[loader.Name] = ix
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cache, nil
}

// Lookup finds the value stored under parts in index.
// It returns an ErrUnavailable error when the index failed to load.
func (c *Cache) Lookup(index string, parts ...string) (any, bool, error) {
	if err, failed := c.failed[index]; failed {
		return nil, false, fmt.Errorf("%w: %s (%v)", ErrUnavailable, index, err)
	}
	ix, ok := c.indexes[index]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnavailable, index)
	}
	v, ok := ix[Key(parts...)]
	return v, ok, nil
}

// Find is a typed Lookup.
func Find[T any](c *Cache, index string, parts ...string) (T, bool, error) {
	var zero T
	v, ok, err := c.Lookup(index, parts...)
	if err != nil || !ok {
		return zero, false, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("index %s holds %T, not %T", index, v, zero)
	}
	return t, true, nil
}

// Existing looks up a persisted row by an evaluated natural key.
func (c *Cache) Existing(kv KeyValue) (Existing, bool) {
	if kv.Folded == "" {
		return Existing{}, false
	}
	ix, ok := c.indexes[ExistingIndex(kv.Key.Name)]
	if !ok {
		return Existing{}, false
	}
	ex, ok := ix[kv.Folded].(Existing)
	return ex, ok
}

// Failed returns the optional indices that failed to load.
func (c *Cache) Failed() []string {
	names := make([]string, 0, len(c.failed))
	for name := range c.failed {
		names = append(names, name)
	}
	return names
}
