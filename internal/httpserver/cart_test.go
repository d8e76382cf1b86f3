package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func putJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var res cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode cart response: %v body=%s", err, rec.Body.String())
	}
	return res
}

func TestCartFlowOverHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps(t)
	router := buildRouter(logDiscard(), nil, deps)

	do := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Add two units of one product, one of another.
	rec := do(postJSON("/api/cart/items", `{"product":{"id":"p1","name":"Scrunchie Set","price":500,"images":["a.jpg"]},"quantity":2}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = do(postJSON("/api/cart/items", `{"product":{"id":"p2","name":"Hair Clip","price":300},"quantity":1}`))
	res := decodeCart(t, rec)
	if res.Total != 1300 || res.ItemCount != 3 {
		t.Fatalf("expected total 1300 count 3, got %v %d", res.Total, res.ItemCount)
	}

	// Adding p1 again merges instead of appending.
	rec = do(postJSON("/api/cart/items", `{"product":{"id":"p1","name":"Scrunchie Set","price":500},"quantity":3}`))
	res = decodeCart(t, rec)
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(res.Items))
	}

	// Absolute quantity set.
	rec = do(putJSON("/api/cart/items/p1", `{"quantity":1}`))
	res = decodeCart(t, rec)
	if res.Total != 800 {
		t.Fatalf("expected total 800 after set, got %v", res.Total)
	}

	// Quantity zero removes the line.
	rec = do(putJSON("/api/cart/items/p2", `{"quantity":0}`))
	res = decodeCart(t, rec)
	if len(res.Items) != 1 || res.Items[0].ProductID != "p1" {
		t.Fatalf("expected only p1, got %+v", res.Items)
	}

	// Removing an absent product is a no-op.
	rec = do(httptest.NewRequest(http.MethodDelete, "/api/cart/items/ghost", nil))
	res = decodeCart(t, rec)
	if len(res.Items) != 1 {
		t.Fatalf("cart changed by removing absent id: %+v", res.Items)
	}

	// Clear empties everything.
	rec = do(httptest.NewRequest(http.MethodDelete, "/api/cart", nil))
	res = decodeCart(t, rec)
	if res.ItemCount != 0 || res.Total != 0 || len(res.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", res)
	}
}

func TestAddCartItemDefaultsQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps(t)
	rec := serve(t, deps, postJSON("/api/cart/items", `{"product":{"id":"p1","name":"Scrunchie Set","price":500}}`))
	res := decodeCart(t, rec)
	if res.ItemCount != 1 {
		t.Fatalf("expected quantity defaulted to 1, got %d", res.ItemCount)
	}
}

func TestAddCartItemRequiresProductID(t *testing.T) {
	rec := serve(t, testDeps(t), postJSON("/api/cart/items", `{"product":{"name":"No ID"},"quantity":1}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetCartEmptyShape(t *testing.T) {
	rec := serve(t, testDeps(t), httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res struct {
		Items []domain.LineItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Items == nil {
		t.Fatalf("expected empty array, got null: %s", rec.Body.String())
	}
}
