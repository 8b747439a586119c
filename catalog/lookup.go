package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"storefront/core"
)

const snapshotKey = "catalog:all"

// Lookup is the full-catalog read model. Cart and order views hold only
// product identifiers; this resolves them to display name, price, and image
// even when the product is not on the currently browsed page.
//
// It is deliberately separate from the paginated Controller: the snapshot
// tolerates more staleness than the browse view and refreshes on its own
// trigger, so the two models are never unified.
type Lookup struct {
	api    core.CatalogAPI
	cache  core.Memory
	ttl    time.Duration
	logger core.Logger

	mu       sync.RWMutex
	products map[string]core.Product
}

// NewLookup creates a lookup backed by the given cache. A nil cache falls
// back to an in-memory store.
func NewLookup(api core.CatalogAPI, cache core.Memory, ttl time.Duration, logger core.Logger) *Lookup {
	if cache == nil {
		cache = core.NewMemoryStore()
	}
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Lookup{
		api:      api,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
		products: make(map[string]core.Product),
	}
}

// Refresh loads the full catalog snapshot, preferring the cache while its
// TTL holds. This is a passive background refresh: on failure the prior
// snapshot stays in place and the error is logged, not propagated as fatal
// state.
func (l *Lookup) Refresh(ctx context.Context) error {
	if cached, err := l.cache.Get(ctx, snapshotKey); err == nil && cached != "" {
		var products []core.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			l.replace(products)
			l.logger.Debug("Catalog snapshot served from cache", map[string]interface{}{
				"operation": "lookup_refresh",
				"products":  len(products),
			})
			return nil
		}
		// Corrupt cache entry falls through to a backend fetch
	}

	products, err := l.api.ListAll(ctx)
	if err != nil {
		l.logger.Error("Catalog snapshot refresh failed, keeping prior snapshot", map[string]interface{}{
			"operation": "lookup_refresh",
			"error":     err.Error(),
		})
		return err
	}

	l.replace(products)

	if data, err := json.Marshal(products); err == nil {
		if err := l.cache.Set(ctx, snapshotKey, string(data), l.ttl); err != nil {
			l.logger.Warn("Failed to cache catalog snapshot", map[string]interface{}{
				"operation": "lookup_refresh",
				"error":     err.Error(),
			})
		}
	}

	l.logger.Info("Catalog snapshot refreshed", map[string]interface{}{
		"operation": "lookup_refresh",
		"products":  len(products),
	})

	return nil
}

// Invalidate drops the cached snapshot so the next Refresh hits the backend
func (l *Lookup) Invalidate(ctx context.Context) error {
	return l.cache.Delete(ctx, snapshotKey)
}

// Resolve maps a product ID onto the current snapshot. The boolean reports
// whether the product is known; an unresolved ID is not an error since
// catalog and cart can be momentarily out of sync during loading.
func (l *Lookup) Resolve(productID string) (core.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	product, ok := l.products[productID]
	return product, ok
}

// Len returns the number of products in the current snapshot
func (l *Lookup) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.products)
}

func (l *Lookup) replace(products []core.Product) {
	indexed := make(map[string]core.Product, len(products))
	for _, p := range products {
		indexed[p.ID] = p
	}

	l.mu.Lock()
	l.products = indexed
	l.mu.Unlock()
}
