// Package catalog owns the client-side browse state: current page, page
// size, applied filter criteria, and the last-fetched page of results. It is
// the only component that talks to the catalog listing endpoint.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"storefront/core"
)

// Controller reconciles the local browse view with the remote catalog.
//
// Concurrency: the mutex guards state only; the HTTP call runs outside the
// lock, so overlapping fetches are legal and resolve last-completed-wins on
// completion order, not issue order. The optional stale-fetch guard discards
// any response that was issued before the newest response already applied.
type Controller struct {
	api       core.CatalogAPI
	logger    core.Logger
	telemetry core.Telemetry

	mu         sync.Mutex
	page       int
	limit      int
	totalPages int
	totalItems int
	known      bool // totalPages established by a successful fetch
	items      []core.Product
	applied    core.FilterCriteria
	lastErr    error

	staleGuard bool
	issueSeq   uint64
	appliedSeq uint64
}

// Option customizes a Controller
type Option func(*Controller)

// WithLogger attaches a logger
func WithLogger(logger core.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTelemetry attaches a telemetry provider
func WithTelemetry(telemetry core.Telemetry) Option {
	return func(c *Controller) {
		if telemetry != nil {
			c.telemetry = telemetry
		}
	}
}

// WithPageSize sets the initial page size
func WithPageSize(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithStaleFetchGuard enables discarding of out-of-order fetch responses.
// When disabled (the default), whichever fetch completes last wins, even if
// an earlier-issued request completes after a later one.
func WithStaleFetchGuard(enabled bool) Option {
	return func(c *Controller) {
		c.staleGuard = enabled
	}
}

// New creates a browse controller starting at page 1 with default filters
func New(api core.CatalogAPI, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		logger:    &core.NoOpLogger{},
		telemetry: &core.NoOpTelemetry{},
		page:      1,
		limit:     10,
		applied:   core.DefaultFilters(),
		items:     []core.Product{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPage moves to page n and refetches. Once totalPages is known, values
// outside [1, totalPages] are a no-op; an unchanged page is also a no-op.
func (c *Controller) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 || (c.known && n > c.totalPages) {
		c.mu.Unlock()
		c.logger.Debug("Ignoring out-of-range page", map[string]interface{}{
			"operation":   "catalog_set_page",
			"page":        n,
			"total_pages": c.totalPages,
		})
		return nil
	}
	if n == c.page {
		c.mu.Unlock()
		return nil
	}
	c.page = n
	c.mu.Unlock()

	return c.FetchPage(ctx)
}

// SetPageSize changes the page size and refetches. The current page is kept
// as-is: callers that want to land back on page 1 must call SetPage
// themselves.
func (c *Controller) SetPageSize(ctx context.Context, n int) error {
	if n <= 0 {
		return &core.StoreError{
			Op:      "catalog.SetPageSize",
			Kind:    "catalog",
			Message: fmt.Sprintf("page size must be positive, got %d", n),
			Err:     core.ErrValidation,
		}
	}

	c.mu.Lock()
	c.limit = n
	c.mu.Unlock()

	return c.FetchPage(ctx)
}

// ApplyFilters atomically replaces the applied criteria, resets to page 1,
// and refetches. The caller's in-progress filter edits are its own concern;
// only what is passed here is committed.
func (c *Controller) ApplyFilters(ctx context.Context, criteria core.FilterCriteria) error {
	if criteria.SortBy == "" {
		criteria.SortBy = core.SortByName
	}
	if criteria.Order == "" {
		criteria.Order = core.SortAsc
	}

	c.mu.Lock()
	c.applied = criteria
	c.page = 1
	c.mu.Unlock()

	c.logger.Info("Applied catalog filters", map[string]interface{}{
		"operation": "catalog_apply_filters",
		"search":    criteria.Search,
		"sort_by":   string(criteria.SortBy),
		"order":     string(criteria.Order),
	})

	return c.FetchPage(ctx)
}

// ClearFilters resets applied criteria to defaults and returns to page 1
func (c *Controller) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.applied = core.DefaultFilters()
	c.page = 1
	c.mu.Unlock()

	return c.FetchPage(ctx)
}

// FetchPage issues one listing request with the current page, page size, and
// applied filters. On success it replaces items and pagination metadata; on
// failure the previous page data stays visible (stale but valid) and the
// error is surfaced to the caller.
func (c *Controller) FetchPage(ctx context.Context) error {
	ctx, span := c.telemetry.StartSpan(ctx, "catalog.fetch_page")
	defer span.End()

	c.mu.Lock()
	query := core.PageQuery{Page: c.page, Limit: c.limit, Filters: c.applied}
	c.issueSeq++
	seq := c.issueSeq
	c.mu.Unlock()

	span.SetAttribute("catalog.page", query.Page)
	span.SetAttribute("catalog.limit", query.Limit)

	page, err := c.api.List(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		if c.staleGuard && seq <= c.appliedSeq {
			// A newer response has already been applied; this failure says
			// nothing about the data on display.
			c.logger.Warn("Ignoring stale catalog fetch failure", map[string]interface{}{
				"operation":   "catalog_fetch",
				"sequence":    seq,
				"applied_seq": c.appliedSeq,
				"error":       err.Error(),
			})
			return err
		}
		c.lastErr = err
		c.logger.Error("Catalog fetch failed, keeping previous page data", map[string]interface{}{
			"operation": "catalog_fetch",
			"page":      query.Page,
			"error":     err.Error(),
		})
		return err
	}

	if c.staleGuard && seq <= c.appliedSeq {
		c.logger.Warn("Discarding stale catalog response", map[string]interface{}{
			"operation":   "catalog_fetch",
			"sequence":    seq,
			"applied_seq": c.appliedSeq,
		})
		span.SetAttribute("catalog.stale_discarded", true)
		return nil
	}
	c.appliedSeq = seq

	c.items = page.Items
	c.totalPages = page.Pages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.totalItems = page.Total
	c.known = true
	c.lastErr = nil

	// Clamp into [1, totalPages] now that totalPages may have changed
	c.page = query.Page
	if c.page > c.totalPages {
		c.page = c.totalPages
	}
	if c.page < 1 {
		c.page = 1
	}

	c.logger.Debug("Catalog page applied", map[string]interface{}{
		"operation":   "catalog_fetch",
		"page":        c.page,
		"total_pages": c.totalPages,
		"items":       len(c.items),
	})

	return nil
}

// Items returns a copy of the last successfully fetched page
func (c *Controller) Items() []core.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]core.Product, len(c.items))
	copy(items, c.items)
	return items
}

// State returns the pagination metadata from the last successful fetch
func (c *Controller) State() core.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return core.PageState{
		Page:       c.page,
		Limit:      c.limit,
		TotalPages: c.totalPages,
		TotalItems: c.totalItems,
	}
}

// Filters returns the currently applied criteria
func (c *Controller) Filters() core.FilterCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}

// LastError returns the error from the most recent failed fetch, or nil
// after a successful one
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
