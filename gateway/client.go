package gateway

import (
	"net/http"
	"time"

	"storefront/core"
)

// Clients bundles the three gateways over one shared HTTP client
type Clients struct {
	Catalog *CatalogClient
	Cart    *CartClient
	Orders  *OrderClient
}

// ClientOption customizes the shared base client
type ClientOption func(*BaseClient)

// WithHTTPClient replaces the underlying HTTP client, e.g. with
// telemetry.NewTracedHTTPClient for trace propagation
func WithHTTPClient(client *http.Client) ClientOption {
	return func(b *BaseClient) {
		if client != nil {
			b.HTTPClient = client
		}
	}
}

// WithTelemetry attaches a telemetry provider for spans and metrics
func WithTelemetry(telemetry core.Telemetry) ClientOption {
	return func(b *BaseClient) {
		if telemetry != nil {
			b.Telemetry = telemetry
		}
	}
}

// NewClients creates catalog, cart, and order gateways sharing one base
// client (and therefore one connection pool)
func NewClients(baseURL string, timeout time.Duration, logger core.Logger, opts ...ClientOption) *Clients {
	base := NewBaseClient(baseURL, timeout, logger)
	for _, opt := range opts {
		opt(base)
	}

	return &Clients{
		Catalog: NewCatalogClient(base),
		Cart:    NewCartClient(base),
		Orders:  NewOrderClient(base),
	}
}
