// Package cart owns the authoritative local view of the session cart. Every
// mutation is forwarded to the cart gateway and the local view is replaced by
// a fresh reload of the backend's state: there is no speculative merge and no
// optimistic increment, so the local cart always matches confirmed server
// state or the last confirmed state before a failed mutation.
package cart

import (
	"context"
	"sync"

	"storefront/core"
)

// Controller synchronizes the session cart with the backend.
//
// Mutations are not serialized against each other: two rapid mutations race
// with last-completed-wins semantics on the reload. Callers needing strict
// ordering must await one mutation's settlement before issuing the next.
type Controller struct {
	api       core.CartAPI
	sessionID string
	logger    core.Logger

	mu    sync.Mutex
	items []core.CartItem
}

// New creates a cart controller bound to one session identity. The session
// ID comes from core.SessionManager, read once at startup.
func New(api core.CartAPI, sessionID string, logger core.Logger) *Controller {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Controller{
		api:       api,
		sessionID: sessionID,
		logger:    logger,
		items:     []core.CartItem{},
	}
}

// SessionID returns the session identity this cart belongs to
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Load fetches the authoritative cart and replaces local state wholesale
func (c *Controller) Load(ctx context.Context) error {
	cart, err := c.api.Get(ctx, c.sessionID)
	if err != nil {
		c.logger.Error("Cart load failed", map[string]interface{}{
			"operation":  "cart_load",
			"session_id": c.sessionID,
			"error":      err.Error(),
		})
		return err
	}

	c.replace(cart.Items)
	return nil
}

// AddItem requests one unit of the product and reloads the confirmed cart.
// Fails with ErrOutOfStock when stock is exhausted and ErrNotFound when the
// product does not exist; local state is untouched on failure.
func (c *Controller) AddItem(ctx context.Context, productID string) error {
	if _, err := c.api.AddItem(ctx, c.sessionID, productID, 1); err != nil {
		c.logger.Error("Cart add failed", map[string]interface{}{
			"operation":  "cart_add_item",
			"session_id": c.sessionID,
			"product_id": productID,
			"error":      err.Error(),
		})
		return err
	}

	return c.Load(ctx)
}

// UpdateQuantity sets the absolute quantity of a line item. A quantity of
// zero is not a valid stored state and delegates to RemoveItem. Fails with
// ErrValidation when the quantity exceeds available stock.
func (c *Controller) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity == 0 {
		return c.RemoveItem(ctx, productID)
	}
	if quantity < 0 {
		return &core.StoreError{
			Op:      "cart.UpdateQuantity",
			Kind:    "cart",
			ID:      productID,
			Message: "quantity cannot be negative",
			Err:     core.ErrValidation,
		}
	}

	if _, err := c.api.UpdateItem(ctx, c.sessionID, productID, quantity); err != nil {
		c.logger.Error("Cart update failed", map[string]interface{}{
			"operation":  "cart_update_quantity",
			"session_id": c.sessionID,
			"product_id": productID,
			"quantity":   quantity,
			"error":      err.Error(),
		})
		return err
	}

	return c.Load(ctx)
}

// RemoveItem deletes a line item and reloads. Removing an already-absent
// item is idempotent: a not-found response from the gateway is treated as
// success.
func (c *Controller) RemoveItem(ctx context.Context, productID string) error {
	if err := c.api.RemoveItem(ctx, c.sessionID, productID); err != nil && !core.IsNotFound(err) {
		c.logger.Error("Cart remove failed", map[string]interface{}{
			"operation":  "cart_remove_item",
			"session_id": c.sessionID,
			"product_id": productID,
			"error":      err.Error(),
		})
		return err
	}

	return c.Load(ctx)
}

// Clear deletes the entire cart on the backend and resets local state
func (c *Controller) Clear(ctx context.Context) error {
	if err := c.api.Clear(ctx, c.sessionID); err != nil {
		c.logger.Error("Cart clear failed", map[string]interface{}{
			"operation":  "cart_clear",
			"session_id": c.sessionID,
			"error":      err.Error(),
		})
		return err
	}

	c.replace(nil)
	return nil
}

// Items returns a copy of the confirmed cart line items
func (c *Controller) Items() []core.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]core.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// ItemCount returns the total number of units across all line items, as
// shown on the cart badge
func (c *Controller) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the confirmed cart has no line items
func (c *Controller) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Controller) replace(items []core.CartItem) {
	if items == nil {
		items = []core.CartItem{}
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}
