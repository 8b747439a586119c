// Package order orchestrates order creation from the current cart and
// exposes read access to order history. Creation is guarded by a small state
// machine so a controller instance can never double-submit.
package order

import (
	"context"
	"sync"

	"storefront/core"
)

// State is the submission state of the controller
type State int

const (
	// Idle means no submission is in flight; Create may be called
	Idle State = iota
	// Submitting means a creation request is in flight
	Submitting
)

// CartController is the slice of the cart controller the workflow needs
type CartController interface {
	Items() []core.CartItem
	Clear(ctx context.Context) error
}

// CatalogRefresher refetches the browse page after an order changes stock
type CatalogRefresher interface {
	FetchPage(ctx context.Context) error
}

// Controller composes the cart controller and the order gateway.
//
// The Idle/Submitting guard is local to this instance: it does not prevent
// duplicate orders across independent sessions or processes.
type Controller struct {
	api       core.OrderAPI
	cart      CartController
	catalog   CatalogRefresher // optional
	logger    core.Logger
	telemetry core.Telemetry

	mu          sync.Mutex
	state       State
	lastOrderID string
}

// Option customizes a Controller
type Option func(*Controller)

// WithCatalogRefresher wires the browse refetch triggered after creation
func WithCatalogRefresher(refresher CatalogRefresher) Option {
	return func(c *Controller) {
		c.catalog = refresher
	}
}

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

// New creates an order workflow controller
func New(api core.OrderAPI, cartCtrl CartController, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		cart:      cartCtrl,
		logger:    &core.NoOpLogger{},
		telemetry: &core.NoOpTelemetry{},
		state:     Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create submits the current committed cart as a new order.
//
// Preconditions: the controller must be Idle and the cart non-empty; an
// empty cart fails with ErrEmptyCart before any network call. On success the
// remote and local cart are cleared and a passive catalog refetch is
// triggered (its failure is logged, not returned). On failure the cart is
// left untouched and the gateway's error is surfaced verbatim.
func (c *Controller) Create(ctx context.Context) (*core.Order, error) {
	ctx, span := c.telemetry.StartSpan(ctx, "order.create")
	defer span.End()

	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		err := core.NewStoreError("order.Create", "order", core.ErrSubmissionInFlight)
		span.RecordError(err)
		return nil, err
	}

	items := c.cart.Items()
	if len(items) == 0 {
		c.mu.Unlock()
		err := core.NewStoreError("order.Create", "order", core.ErrEmptyCart)
		span.RecordError(err)
		return nil, err
	}

	c.state = Submitting
	c.mu.Unlock()

	// Both terminal outcomes return to Idle before another submission may
	// start.
	defer func() {
		c.mu.Lock()
		c.state = Idle
		c.mu.Unlock()
	}()

	span.SetAttribute("order.line_items", len(items))

	order, err := c.api.Create(ctx, items)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("Order creation failed, cart left untouched", map[string]interface{}{
			"operation": "order_create",
			"error":     err.Error(),
		})
		return nil, err
	}

	c.mu.Lock()
	c.lastOrderID = order.ID
	c.mu.Unlock()

	span.SetAttribute("order.id", order.ID)
	c.logger.Info("Order created", map[string]interface{}{
		"operation": "order_create",
		"order_id":  order.ID,
		"total":     order.Total,
		"status":    string(order.Status),
	})
	c.telemetry.RecordMetric("storefront.orders.created", 1, map[string]string{
		"status": string(order.Status),
	})

	// The order exists now; a failed cleanup must not masquerade as a failed
	// submission.
	if err := c.cart.Clear(ctx); err != nil {
		c.logger.Warn("Cart clear after order creation failed", map[string]interface{}{
			"operation": "order_create",
			"order_id":  order.ID,
			"error":     err.Error(),
		})
	}

	// Stock levels may have changed; passive refetch of the browse page.
	if c.catalog != nil {
		if err := c.catalog.FetchPage(ctx); err != nil {
			c.logger.Warn("Catalog refetch after order creation failed", map[string]interface{}{
				"operation": "order_create",
				"order_id":  order.ID,
				"error":     err.Error(),
			})
		}
	}

	return order, nil
}

// ListOrders is a read-through passthrough with no caching across calls
func (c *Controller) ListOrders(ctx context.Context) ([]core.Order, error) {
	return c.api.List(ctx)
}

// GetOrder is a read-through passthrough with no caching across calls
func (c *Controller) GetOrder(ctx context.Context, orderID string) (*core.Order, error) {
	if orderID == "" {
		return nil, &core.StoreError{
			Op:      "order.GetOrder",
			Kind:    "order",
			Message: "order ID is required",
			Err:     core.ErrValidation,
		}
	}
	return c.api.Get(ctx, orderID)
}

// State returns the current submission state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastOrderID returns the identifier of the most recently created order,
// for the confirmation flow in the presentation layer
func (c *Controller) LastOrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOrderID
}
