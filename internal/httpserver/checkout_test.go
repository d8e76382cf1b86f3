package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/api"
	"storefront/internal/domain"
)

func TestApplyDiscountHandlerComputesFinalTotal(t *testing.T) {
	deps := testDeps(t)
	deps.Cart.Add(context.Background(), domain.Product{ID: "p1", Name: "Scrunchie Set", Price: 500}, 2)
	deps.Cart.Add(context.Background(), domain.Product{ID: "p2", Name: "Hair Clip", Price: 300}, 1)
	deps.Checkout = &stubCheckoutSvc{discount: 130}

	rec := serve(t, deps, postJSON("/api/checkout/discount", `{"code":"SAVE10"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var res struct {
		DiscountAmount float64 `json:"discount_amount"`
		Subtotal       float64 `json:"subtotal"`
		FinalTotal     float64 `json:"final_total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Subtotal != 1300 || res.DiscountAmount != 130 || res.FinalTotal != 1170 {
		t.Fatalf("unexpected totals: %+v", res)
	}
}

func TestApplyDiscountHandlerInvalidCode(t *testing.T) {
	deps := testDeps(t)
	deps.Checkout = &stubCheckoutSvc{discountErr: &api.Error{StatusCode: http.StatusNotFound, Detail: "Invalid discount code"}}

	rec := serve(t, deps, postJSON("/api/checkout/discount", `{"code":"NOPE"}`))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlaceOrderHandlerCreated(t *testing.T) {
	deps := testDeps(t)
	deps.Checkout = &stubCheckoutSvc{order: &domain.Order{ID: "o1", TotalAmount: 1170}}

	rec := serve(t, deps, postJSON("/api/checkout/orders", `{"shipping_address":{"city":"Mumbai"},"currency":"INR","discount_code":"SAVE10"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPlaceOrderHandlerUnauthenticated(t *testing.T) {
	deps := testDeps(t)
	deps.Checkout = &stubCheckoutSvc{orderErr: domain.ErrUnauthenticated}

	rec := serve(t, deps, postJSON("/api/checkout/orders", `{"shipping_address":{"city":"Mumbai"}}`))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPopupEndpoints(t *testing.T) {
	deps := testDeps(t)
	popups := &stubPopups{current: &domain.Popup{ID: "pop1", Title: "Festive Sale"}}
	deps.Popups = popups

	rec := serve(t, deps, httptest.NewRequest(http.MethodGet, "/api/popup", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res struct {
		Popup *domain.Popup `json:"popup"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Popup == nil || res.Popup.ID != "pop1" {
		t.Fatalf("unexpected popup: %+v", res.Popup)
	}

	rec = serve(t, deps, httptest.NewRequest(http.MethodPost, "/api/popup/pop1/dismiss", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(popups.dismissed) != 1 || popups.dismissed[0] != "pop1" {
		t.Fatalf("dismiss not forwarded: %+v", popups.dismissed)
	}
}
