package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger provides structured logging for the storefront client.
//
// Design:
//   - Production-ready: JSON format in K8s, text for local dev
//   - Rate-limited: prevents error-log flooding during backend outages
//   - Thread-safe: safe for concurrent access
type Logger struct {
	level       string
	debug       bool
	serviceName string
	format      string
	output      io.Writer
	mu          sync.RWMutex

	// Rate limiting to prevent log flooding during failures
	errorLimiter *RateLimiter
}

// NewLogger creates a logger for the given service name.
// Configuration priority:
//  1. Environment variables (STOREFRONT_LOG_LEVEL, STOREFRONT_DEBUG)
//  2. Auto-detection (K8s environment)
//  3. Defaults
func NewLogger(serviceName string) *Logger {
	level := os.Getenv("STOREFRONT_LOG_LEVEL")
	if level == "" {
		level = "INFO"
	}

	debug := os.Getenv("STOREFRONT_DEBUG") == "true" ||
		strings.ToUpper(level) == "DEBUG"

	// JSON in K8s for log aggregation, text for local development
	format := "text"
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		format = "json"
	}
	if envFormat := os.Getenv("STOREFRONT_LOG_FORMAT"); envFormat != "" {
		format = envFormat
	}

	return &Logger{
		level:        strings.ToUpper(level),
		debug:        debug,
		serviceName:  serviceName,
		format:       format,
		output:       os.Stdout,
		errorLimiter: NewRateLimiter(1 * time.Second), // Max 1 error log per second
	}
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

// Error logs error messages with rate limiting
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	if l.errorLimiter != nil && !l.errorLimiter.Allow() {
		return
	}
	l.log("ERROR", msg, fields)
}

// Debug logs debug messages (only when debug mode is enabled)
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", msg, fields)
}

func (l *Logger) log(level, msg string, fields map[string]interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.shouldLog(level) {
		return
	}

	timestamp := time.Now().Format(time.RFC3339)

	if l.format == "json" {
		l.logJSON(timestamp, level, msg, fields)
	} else {
		l.logText(timestamp, level, msg, fields)
	}
}

func (l *Logger) logJSON(timestamp, level, msg string, fields map[string]interface{}) {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"service":   l.serviceName,
		"message":   msg,
	}

	for k, v := range fields {
		// Avoid overwriting core fields
		if k != "timestamp" && k != "level" && k != "service" && k != "message" {
			logEntry[k] = v
		}
	}

	if data, err := json.Marshal(logEntry); err == nil {
		fmt.Fprintln(l.output, string(data))
	}
}

func (l *Logger) logText(timestamp, level, msg string, fields map[string]interface{}) {
	var fieldStr strings.Builder
	if len(fields) > 0 {
		fieldStr.WriteString(" ")
		// Common fields first for readability. The caller's map is left
		// untouched so it can be reused across log calls.
		if op, ok := fields["operation"]; ok {
			fieldStr.WriteString(fmt.Sprintf("operation=%v ", op))
		}
		if err, ok := fields["error"]; ok {
			fieldStr.WriteString(fmt.Sprintf("error=\"%v\" ", err))
		}
		for k, v := range fields {
			if k == "operation" || k == "error" {
				continue
			}
			fieldStr.WriteString(fmt.Sprintf("%s=%v ", k, v))
		}
	}

	fmt.Fprintf(l.output, "%s [%s] [%s] %s%s\n",
		timestamp, level, l.serviceName, msg, fieldStr.String())
}

func (l *Logger) shouldLog(level string) bool {
	levels := map[string]int{
		"DEBUG": 0,
		"INFO":  1,
		"WARN":  2,
		"ERROR": 3,
	}

	currentLevel, ok1 := levels[l.level]
	messageLevel, ok2 := levels[level]

	// Default to logging if levels are unknown
	if !ok1 || !ok2 {
		return true
	}

	return messageLevel >= currentLevel
}

// SetLevel dynamically updates the log level
func (l *Logger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = strings.ToUpper(level)
	l.debug = l.level == "DEBUG"
}

// SetFormat dynamically updates the log format
func (l *Logger) SetFormat(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
}

// SetOutput changes the output writer (useful for testing)
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// RateLimiter implements a simple rate limiter for error logging
type RateLimiter struct {
	interval time.Duration
	lastTime time.Time
	mu       sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
	}
}

// Allow returns true if an action is allowed based on rate limiting
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.lastTime) >= r.interval {
		r.lastTime = now
		return true
	}
	return false
}
