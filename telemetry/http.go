package telemetry

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewTracedHTTPClient creates an HTTP client that automatically propagates
// trace context to the backend via W3C TraceContext headers and records a
// client span per request.
//
// The returned client is safe to use concurrently and should be reused
// across requests for connection pooling benefits. A timeout of zero means
// no client-side deadline.
func NewTracedHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(transport),
	}
}
