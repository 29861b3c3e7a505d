package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdminGuard(t *testing.T) {
	a := newTestApp(t, 100)

	resp, _ := a.do("GET", "/api/v1/admin/stats", "s1", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("guest: expected 401, got %d", resp.StatusCode)
	}

	buyer := a.login("s1", "user", "user")
	resp, _ = a.do("GET", "/api/v1/admin/stats", buyer, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("buyer: expected 403, got %d", resp.StatusCode)
	}
	resp, _ = a.do("POST", "/api/v1/admin/products", buyer, map[string]any{"name": "x", "price": "1", "category": "Misc"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("buyer save: expected 403, got %d", resp.StatusCode)
	}
	if len(a.logs.FilterMessage("access.denied.admin").All()) != 2 {
		t.Fatal("denied admin access not logged")
	}
}

func TestAdminProducts(t *testing.T) {
	a := newTestApp(t, 100)
	sid := a.login("s1", "admin", "admin")

	resp, body := a.do("POST", "/api/v1/admin/products", sid, map[string]any{
		"name": "Mesh Node", "description": "Extends coverage.", "price": "89.50",
		"category": "Networking", "stock": 12, "specs": []string{"Wi-Fi 6", ""},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %v", resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	if len(id) != 36 {
		t.Fatalf("expected a generated uuid, got %q", id)
	}
	if specs := body["specs"].([]any); len(specs) != 1 {
		t.Fatalf("blank specs should be dropped: %v", specs)
	}

	resp, body = a.do("POST", "/api/v1/admin/products", sid, map[string]any{
		"id": id, "name": "Mesh Node 2", "price": 79.5, "category": "Networking", "stock": 3,
	})
	if resp.StatusCode != http.StatusOK || body["name"] != "Mesh Node 2" || body["price"] != "79.5" {
		t.Fatalf("update: %d %v", resp.StatusCode, body)
	}

	_, body = a.do("GET", "/api/v1/admin/products", sid, nil)
	if n := len(body["products"].([]any)); n != 5 {
		t.Fatalf("expected 5 products, got %d", n)
	}

	for _, bad := range []map[string]any{
		{"name": "", "price": "1", "category": "Misc"},
		{"name": "Lamp", "price": "-1", "category": "Misc"},
		{"name": "Lamp", "price": "1.001", "category": "Misc"},
		{"name": "Lamp", "price": "1", "category": "<b>"},
		{"name": "Lamp", "price": "1", "category": "Misc", "stock": -1},
	} {
		resp, _ = a.do("POST", "/api/v1/admin/products", sid, bad)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", bad, resp.StatusCode)
		}
	}

	resp, _ = a.do("DELETE", "/api/v1/admin/products/"+id, sid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	resp, _ = a.do("GET", "/api/v1/products/"+id, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted product still served: %d", resp.StatusCode)
	}
	if len(a.logs.FilterMessage("admin.products.save").All()) != 2 {
		t.Fatal("product saves not audited")
	}
}

func TestAdminDescribe(t *testing.T) {
	a := newTestApp(t, 100)
	sid := a.login("s1", "admin", "admin")

	resp, body := a.do("POST", "/api/v1/admin/products/describe", sid, map[string]string{"name": "Router", "category": "Networking"})
	if resp.StatusCode != http.StatusOK || body["description"] != "Blazing fast. Built to last." {
		t.Fatalf("describe: %d %v", resp.StatusCode, body)
	}
	resp, _ = a.do("POST", "/api/v1/admin/products/describe", sid, map[string]string{"name": "Router"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing category: expected 400, got %d", resp.StatusCode)
	}
}

func TestAdminOrdersAndStats(t *testing.T) {
	a := newTestApp(t, 100)
	buyer := a.login("buyer", "user", "user")
	a.do("POST", "/api/v1/cart", buyer, map[string]any{"productId": "2", "quantity": 2})
	_, order := a.do("POST", "/api/v1/checkout", buyer, map[string]string{"shippingAddress": "1 Elm St"})
	if order["paymentMethod"] != "Credit Card" {
		t.Fatalf("default payment: %v", order)
	}
	id := order["id"].(string)

	admin := a.login("s1", "admin", "admin")
	_, body := a.do("GET", "/api/v1/admin/orders", admin, nil)
	if n := len(body["orders"].([]any)); n != 1 {
		t.Fatalf("expected 1 order, got %d", n)
	}

	resp, _ := a.do("POST", "/api/v1/admin/orders/"+id+"/status", admin, map[string]string{"status": "Lost"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", resp.StatusCode)
	}
	resp, _ = a.do("POST", "/api/v1/admin/orders/"+id+"/status", admin, map[string]string{"status": "Shipped"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %d", resp.StatusCode)
	}
	_, body = a.do("GET", "/api/v1/orders", buyer, nil)
	if st := body["orders"].([]any)[0].(map[string]any)["status"]; st != "Shipped" {
		t.Fatalf("status not persisted: %v", st)
	}

	_, body = a.do("GET", "/api/v1/admin/stats", admin, nil)
	if body["orders"] != 1.0 || body["products"] != 4.0 || body["sales"] != "499" {
		t.Fatalf("stats: %v", body)
	}
}
