package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"user@example.com","role":"USER"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-123"))
	profile, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if profile.Email != "user@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestClientOmitsEmptyToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	if _, err := c.Products(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClientSurfacesUpstreamDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Discount code usage limit reached"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.ValidateDiscount(context.Background(), "SAVE10", 1000)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "Discount code usage limit reached" {
		t.Fatalf("unexpected message: %q", apiErr.Error())
	}
}

func TestClientGenericFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Orders(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "upstream returned status 502" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestProductsCategoryFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, err := c.Products(context.Background(), "accessories"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "category=accessories" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
}

func TestValidateDiscountQuery(t *testing.T) {
	var gotCode, gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCode = r.URL.Query().Get("code")
		gotAmount = r.URL.Query().Get("order_amount")
		w.Write([]byte(`{"valid":true,"discount_amount":130,"code":"SAVE10"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	res, err := c.ValidateDiscount(context.Background(), "SAVE10", 1300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCode != "SAVE10" || gotAmount != "1300" {
		t.Fatalf("unexpected query: code=%q amount=%q", gotCode, gotAmount)
	}
	if res.DiscountAmount != 130 {
		t.Fatalf("unexpected discount amount: %v", res.DiscountAmount)
	}
}
