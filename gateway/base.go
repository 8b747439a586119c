// Package gateway implements the REST gateways for the storefront backend:
// product catalog, per-session cart, and orders. Each gateway is a stateless
// request/response wrapper; all state reconciliation lives in the controller
// packages.
//
// Failures are single-attempt and surfaced to the caller. There is no retry
// or backoff here: a mutation that failed must stay failed so the controllers
// can keep local state provably unchanged.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/core"
)

// BaseClient provides common functionality for all storefront gateways
type BaseClient struct {
	// HTTP client with timeout. Replaceable, e.g. with
	// telemetry.NewTracedHTTPClient for trace propagation.
	HTTPClient *http.Client

	// BaseURL of the backend, without trailing slash
	BaseURL string

	// Logger for debugging
	Logger core.Logger

	// Telemetry for spans and metrics
	Telemetry core.Telemetry
}

// NewBaseClient creates a base client with defaults
func NewBaseClient(baseURL string, timeout time.Duration, logger core.Logger) *BaseClient {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if logger == nil {
		logger = &core.NoOpLogger{}
	}

	return &BaseClient{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Logger:     logger,
		Telemetry:  &core.NoOpTelemetry{},
	}
}

// apiError is the backend's error body shape
type apiError struct {
	Detail string `json:"detail"`
}

// doJSON performs one request against the backend. body is marshalled as
// JSON when non-nil; the response is unmarshalled into out when non-nil.
// op names the span and log entries (e.g. "catalog.list").
func (b *BaseClient) doJSON(ctx context.Context, op, method, path string, body interface{}, out interface{}) error {
	ctx, span := b.Telemetry.StartSpan(ctx, op)
	defer span.End()
	span.SetAttribute("http.method", method)
	span.SetAttribute("http.path", path)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return core.NewStoreError(op, "gateway", fmt.Errorf("failed to marshal request: %w", err))
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, reqBody)
	if err != nil {
		span.RecordError(err)
		return core.NewStoreError(op, "gateway", fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	b.Logger.Debug("Backend request", map[string]interface{}{
		"operation": op,
		"method":    method,
		"path":      path,
	})
	startTime := time.Now()

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		b.Logger.Error("Backend request failed - send error", map[string]interface{}{
			"operation": op,
			"method":    method,
			"path":      path,
			"error":     err.Error(),
			"phase":     "request_execution",
		})
		span.RecordError(err)
		b.Telemetry.RecordMetric("storefront.gateway.requests", 1, map[string]string{
			"operation": op, "status": "network_error",
		})
		return &core.StoreError{Op: op, Kind: "gateway", Err: fmt.Errorf("%w: %v", core.ErrRequestFailed, err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		b.Logger.Error("Backend request failed - read response error", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
			"phase":     "response_read",
		})
		span.RecordError(err)
		return &core.StoreError{Op: op, Kind: "gateway", Err: fmt.Errorf("%w: %v", core.ErrRequestFailed, err)}
	}

	span.SetAttribute("http.status_code", resp.StatusCode)

	if resp.StatusCode >= 400 {
		apiErr := b.handleError(op, resp.StatusCode, respBody)
		b.Logger.Error("Backend request failed - API error", map[string]interface{}{
			"operation":   op,
			"status_code": resp.StatusCode,
			"error":       apiErr.Error(),
			"phase":       "api_response",
		})
		span.RecordError(apiErr)
		b.Telemetry.RecordMetric("storefront.gateway.requests", 1, map[string]string{
			"operation": op, "status": "api_error",
		})
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			b.Logger.Error("Backend request failed - parse response error", map[string]interface{}{
				"operation": op,
				"error":     err.Error(),
				"phase":     "response_parse",
			})
			span.RecordError(err)
			return core.NewStoreError(op, "gateway", fmt.Errorf("failed to parse response: %w", err))
		}
	}

	b.Logger.Debug("Backend response received", map[string]interface{}{
		"operation":   op,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})
	b.Telemetry.RecordMetric("storefront.gateway.requests", 1, map[string]string{
		"operation": op, "status": "success",
	})

	return nil
}

// handleError maps backend status codes onto the client error taxonomy. The
// backend reports failures as {"detail": "..."}; the detail text is surfaced
// verbatim in the wrapped message.
func (b *BaseClient) handleError(op string, statusCode int, body []byte) error {
	var payload apiError
	_ = json.Unmarshal(body, &payload)
	detail := payload.Detail
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}

	var base error
	switch {
	case statusCode == http.StatusNotFound:
		base = core.ErrNotFound
	case statusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(detail), "stock"):
		base = core.ErrOutOfStock
	case statusCode == http.StatusBadRequest, statusCode == http.StatusUnprocessableEntity:
		base = core.ErrValidation
	default:
		base = fmt.Errorf("%w: status %d", core.ErrRequestFailed, statusCode)
	}

	return &core.StoreError{
		Op:      op,
		Kind:    "gateway",
		Message: detail,
		Err:     base,
	}
}
