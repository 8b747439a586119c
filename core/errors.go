package core

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Catalog/cart/order lookup errors
	ErrNotFound = errors.New("not found")

	// Domain-specific 400-class errors
	ErrOutOfStock = errors.New("insufficient stock")
	ErrValidation = errors.New("validation failed")

	// Client-side precondition failures (never reach the network)
	ErrEmptyCart = errors.New("cart is empty")

	// State errors
	ErrSubmissionInFlight = errors.New("order submission already in progress")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// HTTP/Network errors
	ErrConnectionFailed = errors.New("connection failed")
	ErrRequestFailed    = errors.New("request failed")
)

// StoreError provides structured error information with context
// It implements the error interface and supports error wrapping
type StoreError struct {
	Op      string // Operation that failed (e.g., "cart.AddItem")
	Kind    string // Error kind (e.g., "catalog", "cart", "order")
	ID      string // Optional ID of the entity involved
	Message string // Human-readable message, typically the backend's detail
	Err     error  // Underlying error for wrapping
}

// Error returns the string representation of the error
func (e *StoreError) Error() string {
	if e.Op != "" && e.Err != nil {
		if e.Message != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		if e.ID != "" {
			return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

// Unwrap returns the underlying error for use with errors.Is/As
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(op, kind string, err error) *StoreError {
	return &StoreError{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// IsNotFound checks if an error represents a missing product, cart, or order
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsOutOfStock checks if an error is a stock exhaustion rejection
func IsOutOfStock(err error) bool {
	return errors.Is(err, ErrOutOfStock)
}

// IsValidation checks if an error is a 400-class input rejection
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrOutOfStock)
}

// IsNetwork checks if an error means the request never completed
func IsNetwork(err error) bool {
	return errors.Is(err, ErrConnectionFailed) || errors.Is(err, ErrRequestFailed)
}
