package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMutationsAreAudited(t *testing.T) {
	app, _ := newTestApp(t)

	entries := captureLogs(t, func() {
		do(t, app, httptest.NewRequest("DELETE", "/api/v1/categories/vegetables", nil))
		do(t, app, jsonReq("POST", "/api/v1/orders/ob-1002/status", map[string]string{"status": "CANCELLED"}))
	})

	e, ok := findLog(entries, "category.delete")
	if !ok {
		t.Fatalf("category.delete audit log not found in %v", entries)
	}
	if e.Level != "audit" || e.Fields["category"] != "vegetables" {
		t.Fatalf("unexpected audit entry %+v", e)
	}
	e, ok = findLog(entries, "order.status")
	if !ok || e.Fields["status"] != "CANCELLED" {
		t.Fatalf("order.status audit log missing or wrong: %+v", e)
	}
}

func TestRejectionsAreLoggedWithKind(t *testing.T) {
	app, _ := newTestApp(t)

	entries := captureLogs(t, func() {
		do(t, app, httptest.NewRequest("DELETE", "/api/v1/orders/ob-1001", nil))
	})

	e, ok := findLog(entries, "order.delete.reject")
	if !ok {
		t.Fatalf("order.delete.reject log not found in %v", entries)
	}
	if e.Level != "warn" || e.Kind != "precondition failed" || e.Entity != "order" {
		t.Fatalf("unexpected reject entry %+v", e)
	}
	if e.Fields["order_id"] != "ob-1001" {
		t.Fatalf("reject entry missing order_id: %+v", e)
	}
}

func TestCreateAuditRecordsCreatedStatus(t *testing.T) {
	app, _ := newTestApp(t)

	entries := captureLogs(t, func() {
		do(t, app, jsonReq("POST", "/api/v1/coupons", map[string]any{
			"id": "FRESH", "description": "Promo", "couponType": "percentage", "discountValue": 10,
			"startDate": "2024-01-01", "endDate": "2024-01-31", "productId": "fruits/mango",
		}))
		do(t, app, jsonReq("POST", "/api/v1/categories/fruits/items", map[string]any{
			"id": "durian", "name": "Durian", "description": "Ri6", "price": 90000,
			"unit": "kg", "inventory": 7, "imageRef": "drawable/durian",
		}))
	})

	for _, action := range []string{"coupon.create", "item.create"} {
		e, ok := findLog(entries, action)
		if !ok {
			t.Fatalf("%s audit log not found in %v", action, entries)
		}
		if e.Status != http.StatusCreated {
			t.Fatalf("%s audit should record 201, got %d", action, e.Status)
		}
	}
}
