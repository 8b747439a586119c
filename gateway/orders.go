package gateway

import (
	"context"
	"fmt"
	"net/url"

	"storefront/core"
)

// OrderClient implements core.OrderAPI against the order endpoints
type OrderClient struct {
	*BaseClient
}

// NewOrderClient creates an order gateway sharing the given base client
func NewOrderClient(base *BaseClient) *OrderClient {
	return &OrderClient{BaseClient: base}
}

// createOrderRequest is the order creation body shape
type createOrderRequest struct {
	CartItems []core.CartItem `json:"cart_items"`
}

// Create submits the cart line items for order creation. The backend
// validates stock per item and returns the created order with price and name
// snapshots taken at creation time.
func (c *OrderClient) Create(ctx context.Context, items []core.CartItem) (*core.Order, error) {
	var order core.Order
	body := createOrderRequest{CartItems: items}
	if err := c.doJSON(ctx, "order.create", "POST", "/api/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List fetches the full order history, most recent first
func (c *OrderClient) List(ctx context.Context) ([]core.Order, error) {
	var orders []core.Order
	if err := c.doJSON(ctx, "order.list", "GET", "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get fetches a single order by ID
func (c *OrderClient) Get(ctx context.Context, orderID string) (*core.Order, error) {
	var order core.Order
	path := fmt.Sprintf("/api/orders/%s", url.PathEscape(orderID))
	if err := c.doJSON(ctx, "order.get", "GET", path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
