package gateway

import (
	"context"
	"fmt"
	"net/url"

	"storefront/core"
)

// CartClient implements core.CartAPI against the per-session cart endpoints
type CartClient struct {
	*BaseClient
}

// NewCartClient creates a cart gateway sharing the given base client
func NewCartClient(base *BaseClient) *CartClient {
	return &CartClient{BaseClient: base}
}

// cartItemRequest is the mutation body shape
type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func cartPath(sessionID string, extra ...string) string {
	path := fmt.Sprintf("/api/cart/%s", url.PathEscape(sessionID))
	for _, segment := range extra {
		path += "/" + url.PathEscape(segment)
	}
	return path
}

// Get fetches the authoritative cart for a session. The backend creates the
// cart implicitly on first access, so a fresh session yields an empty cart
// rather than a 404.
func (c *CartClient) Get(ctx context.Context, sessionID string) (*core.Cart, error) {
	var cart core.Cart
	if err := c.doJSON(ctx, "cart.get", "GET", cartPath(sessionID), nil, &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []core.CartItem{}
	}
	return &cart, nil
}

// AddItem requests the backend to add quantity units of a product.
// Fails with ErrOutOfStock when stock is exhausted and ErrNotFound when the
// product does not exist.
func (c *CartClient) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*core.Cart, error) {
	body := cartItemRequest{ProductID: productID, Quantity: quantity}
	var cart core.Cart
	if err := c.doJSON(ctx, "cart.add_item", "POST", cartPath(sessionID, "items"), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem sets the absolute quantity of a line item (not a delta).
// Fails with ErrValidation when the quantity exceeds available stock.
func (c *CartClient) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*core.Cart, error) {
	body := cartItemRequest{ProductID: productID, Quantity: quantity}
	var cart core.Cart
	if err := c.doJSON(ctx, "cart.update_item", "PUT", cartPath(sessionID, "items", productID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem requests deletion of a line item. Returns ErrNotFound when the
// item was already absent; callers treat that as success.
func (c *CartClient) RemoveItem(ctx context.Context, sessionID, productID string) error {
	return c.doJSON(ctx, "cart.remove_item", "DELETE", cartPath(sessionID, "items", productID), nil, nil)
}

// Clear requests deletion of the entire cart contents
func (c *CartClient) Clear(ctx context.Context, sessionID string) error {
	return c.doJSON(ctx, "cart.clear", "DELETE", cartPath(sessionID), nil, nil)
}
