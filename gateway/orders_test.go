package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"storefront/core"
)

func TestOrderCreate(t *testing.T) {
	var gotBody createOrderRequest
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/orders" {
			t.Errorf("path = %q, want /api/orders", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("body unmarshal: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"id": "ord-1",
			"items": [{"product_id":"p1","product_name":"Widget","price":10.0,"quantity":2}],
			"total": 22.0,
			"status": "pending",
			"created_at": "2024-05-01T12:00:00Z"
		}`))
	})

	items := []core.CartItem{{ProductID: "p1", Quantity: 2}}
	order, err := clients.Orders.Create(context.Background(), items)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(gotBody.CartItems) != 1 || gotBody.CartItems[0].ProductID != "p1" {
		t.Errorf("request cart_items = %+v, want [{p1 2}]", gotBody.CartItems)
	}
	if order.ID != "ord-1" {
		t.Errorf("ID = %q, want ord-1", order.ID)
	}
	if order.Status != core.OrderPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "Widget" {
		t.Errorf("Items = %+v, want snapshot with product name", order.Items)
	}
	if order.Total != 22.0 {
		t.Errorf("Total = %v, want 22.0", order.Total)
	}
}

func TestOrderCreate_StockFailure(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Insufficient stock for Widget"}`))
	})

	_, err := clients.Orders.Create(context.Background(), []core.CartItem{{ProductID: "p1", Quantity: 99}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsOutOfStock(err) {
		t.Errorf("IsOutOfStock(err) = false for %v", err)
	}
}

func TestOrderList(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/orders" {
			t.Errorf("%s %s, want GET /api/orders", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id":"ord-2","items":[],"total":5.5,"status":"completed","created_at":"2024-05-02T08:00:00Z"},
			{"id":"ord-1","items":[],"total":22.0,"status":"pending","created_at":"2024-05-01T12:00:00Z"}
		]`))
	})

	orders, err := clients.Orders.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len(orders) = %d, want 2", len(orders))
	}
	if orders[0].ID != "ord-2" || orders[1].ID != "ord-1" {
		t.Errorf("order of results changed: %q, %q", orders[0].ID, orders[1].ID)
	}
}

func TestOrderGet(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders/ord-1" {
			t.Errorf("path = %q, want /api/orders/ord-1", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"ord-1","items":[],"total":22.0,"status":"pending","created_at":"2024-05-01T12:00:00Z"}`))
	})

	order, err := clients.Orders.Get(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if order.ID != "ord-1" {
		t.Errorf("ID = %q, want ord-1", order.ID)
	}
}

func TestOrderGet_NotFound(t *testing.T) {
	clients, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Order not found"}`))
	})

	_, err := clients.Orders.Get(context.Background(), "missing")
	if !core.IsNotFound(err) {
		t.Errorf("IsNotFound(err) = false for %v", err)
	}
}
