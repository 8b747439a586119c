package core

import "time"

// Product is a catalog entry as served by the backend. The backend owns it;
// the client never mutates products.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// CartItem is a single line in a session cart. Quantity is always positive in
// stored state; a quantity of zero signals removal and is never persisted.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the session-scoped cart as returned by the cart endpoints.
type Cart struct {
	Items []CartItem `json:"items"`
}

// OrderStatus is the closed set of backend order states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem captures product name and unit price at order-creation time.
// These snapshots must never be recomputed from live catalog data.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order is immutable from the client's view once created.
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// SortKey selects the catalog sort column.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock"
)

// SortOrder selects the catalog sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterCriteria is the set of applied catalog filters. These are the
// committed criteria actually sent to the backend, distinct from any
// in-progress edits the presentation layer may hold.
type FilterCriteria struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	SortBy   SortKey
	Order    SortOrder
}

// DefaultFilters returns the reset state: empty search, no price bounds,
// sorted by name ascending.
func DefaultFilters() FilterCriteria {
	return FilterCriteria{SortBy: SortByName, Order: SortAsc}
}

// PageQuery is one catalog page request: position plus applied filters.
type PageQuery struct {
	Page    int
	Limit   int
	Filters FilterCriteria
}

// ProductPage is the backend's paginated listing response.
type ProductPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int       `json:"pages"`
}

// PageState is the pagination metadata derived from the last successful
// catalog fetch. It is stale until that fetch completes.
type PageState struct {
	Page       int
	Limit      int
	TotalPages int
	TotalItems int
}
