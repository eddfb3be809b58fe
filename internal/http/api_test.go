package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategoryCreateWithUpload(t *testing.T) {
	app, cfg := newTestApp(t)

	fields := map[string]string{"id": "herbs", "name": "Herbs", "season": "Spring"}
	code, body := do(t, app, multipartReq(t, "POST", "/api/v1/categories", fields, "Herbs Pic.png", []byte("png-bytes")))
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%v", code, body)
	}
	if body["image"] != "drawable/Herbs_Pic" {
		t.Fatalf("unexpected image ref %v", body["image"])
	}
	if _, err := os.Stat(filepath.Join(cfg.ImagesDir, "Herbs_Pic.png")); err != nil {
		t.Fatalf("uploaded file not stored: %v", err)
	}

	code, body = do(t, app, httptest.NewRequest("GET", "/api/v1/categories/herbs", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	cat, _ := body["category"].(map[string]any)
	if cat["imageUrl"] != "/static/images/Herbs_Pic.png" {
		t.Fatalf("unexpected image url %v", cat["imageUrl"])
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected the placeholder item, got %v", items)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/static/images/Herbs_Pic.png", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("static image not served: %v %v", err, resp)
	}

	code, body = do(t, app, multipartReq(t, "POST", "/api/v1/categories", fields, "other.png", []byte("x")))
	if code != http.StatusConflict || body["error"] != "conflict" {
		t.Fatalf("expected 409 conflict, got %d body=%v", code, body)
	}
}

func TestRejectedUploadLeavesStoredImage(t *testing.T) {
	app, cfg := newTestApp(t)
	stored := filepath.Join(cfg.ImagesDir, "herbs.png")

	fields := map[string]string{"id": "herbs", "name": "Herbs", "season": "spring"}
	code, body := do(t, app, multipartReq(t, "POST", "/api/v1/categories", fields, "herbs.png", []byte("original")))
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%v", code, body)
	}

	code, _ = do(t, app, multipartReq(t, "POST", "/api/v1/categories", fields, "herbs.png", []byte("clobbered")))
	if code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", code)
	}
	bad := map[string]string{"id": "herbs2", "name": "", "season": "spring"}
	code, _ = do(t, app, multipartReq(t, "POST", "/api/v1/categories", bad, "herbs.png", []byte("invalid-form")))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on invalid form, got %d", code)
	}
	code, _ = do(t, app, multipartReq(t, "POST", "/api/v1/categories/nope/items", map[string]string{
		"id": "basil", "name": "Basil", "description": "Fresh", "price": "1", "unit": "bunch",
	}, "herbs.png", []byte("missing-category")))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 on missing category, got %d", code)
	}

	raw, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("read stored image: %v", err)
	}
	if string(raw) != "original" {
		t.Fatalf("rejected uploads overwrote the stored image: %q", raw)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	app, _ := newTestApp(t)
	fields := map[string]string{"id": "herbs", "name": "Herbs", "season": "spring"}
	code, body := do(t, app, multipartReq(t, "POST", "/api/v1/categories", fields, "notes.txt", []byte("hello")))
	if code != http.StatusUnprocessableEntity || body["field"] != "image" {
		t.Fatalf("expected 422 on image, got %d body=%v", code, body)
	}
}

func TestItemCrud(t *testing.T) {
	app, _ := newTestApp(t)

	fields := map[string]string{
		"id": "durian", "name": "Durian", "description": "Ri6", "price": "90000",
		"unit": "kg", "inventory": "7", "image_ref": "drawable/durian",
	}
	code, body := do(t, app, multipartReq(t, "POST", "/api/v1/categories/fruits/items", fields, "", nil))
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%v", code, body)
	}
	if body["categoryId"] != "fruits" || body["price"] != 90000.0 {
		t.Fatalf("unexpected item %v", body)
	}

	code, body = do(t, app, jsonReq("PUT", "/api/v1/categories/fruits/items/durian", map[string]any{
		"name": "Durian Ri6", "description": "Creamy", "price": 95000, "unit": "kg", "inventory": 5,
	}))
	if code != http.StatusOK || body["image"] != "drawable/durian" {
		t.Fatalf("update should keep the image, got %d body=%v", code, body)
	}

	code, _ = do(t, app, jsonReq("PUT", "/api/v1/categories/fruits/items/durian", map[string]any{
		"name": "Durian", "description": "x", "price": -1, "unit": "kg",
	}))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for negative price, got %d", code)
	}

	code, _ = do(t, app, httptest.NewRequest("DELETE", "/api/v1/categories/fruits/items/durian", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	code, _ = do(t, app, httptest.NewRequest("GET", "/api/v1/categories/fruits/items/durian", nil))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestCategoryDeleteCascade(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := do(t, app, httptest.NewRequest("DELETE", "/api/v1/categories/fruits", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	code, _ = do(t, app, httptest.NewRequest("GET", "/api/v1/categories/fruits/items/mango", nil))
	if code != http.StatusNotFound {
		t.Fatalf("item should be gone, got %d", code)
	}
	code, _ = do(t, app, httptest.NewRequest("DELETE", "/api/v1/categories/fruits", nil))
	if code != http.StatusNotFound {
		t.Fatalf("second delete should be 404, got %d", code)
	}
}

func TestCouponRejectsDanglingProduct(t *testing.T) {
	app, _ := newTestApp(t)
	coupon := map[string]any{
		"id": "NEW", "description": "Promo", "couponType": "percentage", "discountValue": 10,
		"startDate": "2024-01-01", "endDate": "2024-01-31", "productId": "X/doesnotexist",
	}
	code, body := do(t, app, jsonReq("POST", "/api/v1/coupons", coupon))
	if code != http.StatusUnprocessableEntity || body["error"] != "invalid reference" || body["field"] != "productId" {
		t.Fatalf("expected 422 invalid reference, got %d body=%v", code, body)
	}
	code, _ = do(t, app, httptest.NewRequest("GET", "/api/v1/coupons/NEW", nil))
	if code != http.StatusNotFound {
		t.Fatalf("coupon should not be stored, got %d", code)
	}

	coupon["productId"] = "fruits/mango"
	code, body = do(t, app, jsonReq("POST", "/api/v1/coupons", coupon))
	if code != http.StatusCreated || body["status"] != "expired" {
		t.Fatalf("expected 201 with expired status, got %d body=%v", code, body)
	}
}

func TestCouponDeleteGate(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, httptest.NewRequest("DELETE", "/api/v1/coupons/SUMMER10", nil))
	if code != http.StatusConflict || body["error"] != "precondition failed" {
		t.Fatalf("active coupon delete should be 409, got %d body=%v", code, body)
	}
	code, _ = do(t, app, httptest.NewRequest("DELETE", "/api/v1/coupons/OLD5K", nil))
	if code != http.StatusOK {
		t.Fatalf("expired coupon delete should succeed, got %d", code)
	}

	code, body = do(t, app, httptest.NewRequest("GET", "/api/v1/coupons", nil))
	list, _ := body["coupons"].([]any)
	if code != http.StatusOK || len(list) != 1 {
		t.Fatalf("expected one coupon left, got %d body=%v", code, body)
	}
}

func TestOrderStatusAndDelete(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, jsonReq("POST", "/api/v1/orders/ob-1002/status", map[string]string{"status": "SHIPPED"}))
	if code != http.StatusConflict || body["error"] != "invalid transition" {
		t.Fatalf("expected 409 invalid transition, got %d body=%v", code, body)
	}

	code, _ = do(t, app, httptest.NewRequest("DELETE", "/api/v1/orders/ob-1002", nil))
	if code != http.StatusConflict {
		t.Fatalf("pending order delete should be 409, got %d", code)
	}

	code, body = do(t, app, jsonReq("POST", "/api/v1/orders/ob-1002/status", map[string]string{"status": "paid"}))
	if code != http.StatusOK || body["status"] != "PAID" {
		t.Fatalf("expected PAID, got %d body=%v", code, body)
	}

	code, _ = do(t, app, httptest.NewRequest("DELETE", "/api/v1/orders/ob-1003", nil))
	if code != http.StatusOK {
		t.Fatalf("cancelled order delete should succeed, got %d", code)
	}
	code, body = do(t, app, httptest.NewRequest("GET", "/api/v1/users/u-minh/orders", nil))
	orders, _ := body["orders"].([]any)
	if code != http.StatusOK || len(orders) != 0 {
		t.Fatalf("user index should be empty, got %d body=%v", code, body)
	}
}

func TestOrderListingNewestFirst(t *testing.T) {
	app, _ := newTestApp(t)
	code, body := do(t, app, httptest.NewRequest("GET", "/api/v1/orders", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	orders, _ := body["orders"].([]any)
	var ids []string
	for _, o := range orders {
		ids = append(ids, o.(map[string]any)["id"].(string))
	}
	if strings.Join(ids, ",") != "ob-1002,ob-1001,ob-1003" {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestSoldItemsAfterItemDelete(t *testing.T) {
	app, _ := newTestApp(t)
	if code, _ := do(t, app, httptest.NewRequest("DELETE", "/api/v1/categories/fruits/items/mango", nil)); code != http.StatusOK {
		t.Fatalf("delete item: %d", code)
	}
	code, body := do(t, app, httptest.NewRequest("GET", "/api/v1/sold-items/2024-06-01", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	items, _ := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 sold items, got %v", items)
	}
	first := items[0].(map[string]any)
	if first["itemName"] != "Unknown Item" || first["categoryName"] != "Fruits" {
		t.Fatalf("unexpected enrichment %v", first)
	}
}

func TestReadViews(t *testing.T) {
	app, _ := newTestApp(t)
	for _, path := range []string{
		"/healthz", "/api/v1/categories", "/api/v1/items", "/api/v1/users", "/api/v1/users/u-lan",
		"/api/v1/reviews", "/api/v1/reviews/fruits/mango", "/api/v1/liked-items", "/api/v1/sold-items",
		"/api/v1/orders/ob-1001",
	} {
		if code, body := do(t, app, httptest.NewRequest("GET", path, nil)); code != http.StatusOK {
			t.Fatalf("GET %s: %d body=%v", path, code, body)
		}
	}
	if code, _ := do(t, app, httptest.NewRequest("GET", "/api/v1/users/nobody", nil)); code != http.StatusNotFound {
		t.Fatalf("unknown user should be 404, got %d", code)
	}
	if code, _ := do(t, app, httptest.NewRequest("GET", "/api/v1/nowhere", nil)); code != http.StatusNotFound {
		t.Fatalf("unknown route should be 404, got %d", code)
	}
}

func TestMetricsExposeRejections(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, jsonReq("POST", "/api/v1/orders/ob-1002/status", map[string]string{"status": "SHIPPED"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(raw), "harvestdesk_integrity_rejections_total") {
		t.Fatalf("rejection counter missing from /metrics: %d", resp.StatusCode)
	}
}

func TestBodySizeLimit(t *testing.T) {
	app, _ := newTestApp(t)

	oversize := bytes.Repeat([]byte("A"), (2<<20)+10)
	req := httptest.NewRequest("POST", "/api/v1/coupons", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	// Fiber returns an error instead of a response when body too large; treat that as pass
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversize, got %d", resp.StatusCode)
	}
}
