package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	logger := NewLogger("test-service")
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLevel("DEBUG")
	return logger, &buf
}

func TestLoggerTextFormat(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.SetFormat("text")

	logger.Info("Catalog page applied", map[string]interface{}{
		"operation": "catalog_fetch",
		"page":      2,
	})

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("output missing level: %q", out)
	}
	if !strings.Contains(out, "[test-service]") {
		t.Errorf("output missing service name: %q", out)
	}
	if !strings.Contains(out, "operation=catalog_fetch") {
		t.Errorf("output missing operation field: %q", out)
	}
	if !strings.Contains(out, "page=2") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.SetFormat("json")

	logger.Warn("Cart clear after order creation failed", map[string]interface{}{
		"order_id": "ord-1",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["service"] != "test-service" {
		t.Errorf("service = %v, want test-service", entry["service"])
	}
	if entry["order_id"] != "ord-1" {
		t.Errorf("order_id = %v, want ord-1", entry["order_id"])
	}
	if entry["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

func TestLoggerJSONProtectsCoreFields(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.SetFormat("json")

	logger.Info("message", map[string]interface{}{
		"service": "spoofed",
		"level":   "ERROR",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["service"] != "test-service" {
		t.Errorf("service field overwritten: %v", entry["service"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level field overwritten: %v", entry["level"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.SetFormat("text")
	logger.SetLevel("WARN")

	logger.Debug("debug message", nil)
	logger.Info("info message", nil)
	logger.Warn("warn message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-threshold messages leaked: %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message suppressed: %q", out)
	}
}

func TestLoggerTextDoesNotMutateFields(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.SetFormat("text")

	fields := map[string]interface{}{
		"operation": "cart_load",
		"error":     "connection refused",
	}
	logger.Info("first", fields)
	logger.Info("second", fields)

	if len(fields) != 2 {
		t.Errorf("caller's fields map mutated: %v", fields)
	}
	if strings.Count(buf.String(), "operation=cart_load") != 2 {
		t.Errorf("operation field missing on reuse:\n%s", buf.String())
	}
}

func TestLoggerErrorRateLimiting(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.SetFormat("text")

	for i := 0; i < 10; i++ {
		logger.Error("backend unreachable", nil)
	}

	count := strings.Count(buf.String(), "backend unreachable")
	if count != 1 {
		t.Errorf("error lines = %d, want 1 within the rate-limit window", count)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(50 * time.Millisecond)

	if !limiter.Allow() {
		t.Fatal("first call must be allowed")
	}
	if limiter.Allow() {
		t.Fatal("second immediate call must be limited")
	}

	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow() {
		t.Fatal("call after the interval must be allowed")
	}
}
