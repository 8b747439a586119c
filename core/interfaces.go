package core

import (
	"context"
	"time"
)

// Logger interface - minimal logging interface
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// Telemetry interface - optional telemetry support
type Telemetry interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
	RecordMetric(name string, value float64, labels map[string]string)
}

// Span represents a telemetry span
type Span interface {
	End()
	SetAttribute(key string, value interface{})
	RecordError(err error)
}

// CatalogAPI is the remote product-listing gateway. List serves the paginated
// browse view; ListAll serves the full-catalog lookup read model, which has a
// different staleness tolerance and fetch trigger (the two are not unified).
type CatalogAPI interface {
	List(ctx context.Context, query PageQuery) (*ProductPage, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, productID string) (*Product, error)
}

// CartAPI is the remote per-session cart gateway. Mutations return the
// backend's view of the updated cart.
type CartAPI interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) error
	Clear(ctx context.Context, sessionID string) error
}

// OrderAPI is the remote order gateway.
type OrderAPI interface {
	Create(ctx context.Context, items []CartItem) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
}

// Memory interface for persisted client-side state
type Memory interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Default no-op implementations

// NoOpLogger provides a no-op logger implementation
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Error(msg string, fields map[string]interface{}) {}
func (n *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}

// NoOpTelemetry provides a no-op telemetry implementation
type NoOpTelemetry struct{}

func (n *NoOpTelemetry) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return ctx, &NoOpSpan{}
}

func (n *NoOpTelemetry) RecordMetric(name string, value float64, labels map[string]string) {}

// NoOpSpan provides a no-op span implementation
type NoOpSpan struct{}

func (n *NoOpSpan) End()                                       {}
func (n *NoOpSpan) SetAttribute(key string, value interface{}) {}
func (n *NoOpSpan) RecordError(err error)                      {}
