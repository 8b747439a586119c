// Package pricing computes derived financial totals for cart and order
// views. Everything here is a pure function: accumulation runs on unrounded
// values and only the final outputs are rounded, so rounding error never
// compounds across line items.
package pricing

import (
	"math"

	"storefront/core"
)

// DefaultTaxRate is the fixed order tax rate. There is no jurisdiction
// logic in this client.
const DefaultTaxRate = 0.10

// Round rounds a monetary value to 2 decimal places for display
func Round(value float64) float64 {
	return math.Round(value*100) / 100
}

// LineTotal returns the unrounded extended price of one line item
func LineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// Resolver maps a product ID onto the current catalog snapshot.
// The second return value reports whether the product could be resolved.
type Resolver func(productID string) (core.Product, bool)

// CartTotal sums line totals over all cart items whose product resolves
// against the catalog snapshot. Unresolvable items contribute zero and are
// skipped: cart and catalog can be momentarily out of sync during loading,
// and that is not an error.
func CartTotal(items []core.CartItem, resolve Resolver) float64 {
	var total float64
	for _, item := range items {
		product, ok := resolve(item.ProductID)
		if !ok {
			continue
		}
		total += LineTotal(product.Price, item.Quantity)
	}
	return Round(total)
}

// OrderTotal is the breakdown shown on the order detail view
type OrderTotal struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// OrderTotals computes subtotal, tax, and total from order line snapshots.
// Prices come from the snapshots captured at order creation, never from live
// catalog data.
func OrderTotals(items []core.OrderItem, taxRate float64) OrderTotal {
	var subtotal float64
	for _, item := range items {
		subtotal += LineTotal(item.Price, item.Quantity)
	}
	tax := subtotal * taxRate

	return OrderTotal{
		Subtotal: Round(subtotal),
		Tax:      Round(tax),
		Total:    Round(subtotal + tax),
	}
}
