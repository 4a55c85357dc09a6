package services

import (
	"context"
	"slices"

	"github.com/desertthunder/ytcopy/internal/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedSearch wraps a [DestinationCatalog] and memoises successful searches by filter and query.
//
// Only Search is cached. Failed searches are not stored, so a later attempt reaches the service again.
type CachedSearch struct {
	DestinationCatalog
	cache *lru.Cache[string, []models.SearchCandidate]
}

// NewCachedSearch wraps dest with an LRU of size entries. A size below one returns dest unchanged.
func NewCachedSearch(dest DestinationCatalog, size int) DestinationCatalog {
	if size < 1 {
		return dest
	}
	cache, err := lru.New[string, []models.SearchCandidate](size)
	if err != nil {
		return dest
	}
	return &CachedSearch{DestinationCatalog: dest, cache: cache}
}

// Search returns a cached copy of earlier results or calls the wrapped service.
func (c *CachedSearch) Search(ctx context.Context, query, filter string) ([]models.SearchCandidate, error) {
	key := filter + "\x00" + query
	if hit, ok := c.cache.Get(key); ok {
		return slices.Clone(hit), nil
	}

	results, err := c.DestinationCatalog.Search(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, slices.Clone(results))
	return results, nil
}

// Len returns the number of cached queries.
func (c *CachedSearch) Len() int {
	return c.cache.Len()
}
