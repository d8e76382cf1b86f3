// Package api is the storefront's client for the upstream commerce REST API.
// All durable state (products, orders, users, discounts) lives behind it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Error carries the upstream status and its error message, surfaced verbatim
// to the user where available.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client talks to the upstream API. Calls are plain request/response with a
// per-call timeout; no retries anywhere (every failure is reported once).
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	timeout time.Duration
}

// New builds a Client rooted at baseURL (including any path prefix such as
// /api). tokens may be nil for a client that only makes anonymous calls.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		tokens:  tokens,
		timeout: 10 * time.Second,
	}
}

type TokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        domain.Profile `json:"user"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type OrderDraft struct {
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress map[string]string  `json:"shipping_address"`
	Currency        string             `json:"currency"`
	DiscountCode    string             `json:"discount_code,omitempty"`
}

type DiscountResult struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	Code           string  `json:"code"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products lists the catalog; category narrows it when non-empty.
func (c *Client) Products(ctx context.Context, category string) ([]domain.Product, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Order(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateDiscount asks the upstream whether code applies to orderAmount.
// The reduction is computed server side; the client only reports it.
func (c *Client) ValidateDiscount(ctx context.Context, code string, orderAmount float64) (*DiscountResult, error) {
	query := url.Values{}
	query.Set("code", code)
	query.Set("order_amount", strconv.FormatFloat(orderAmount, 'f', -1, 64))
	var out DiscountResult
	if err := c.do(ctx, http.MethodPost, "/discount/validate", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Popups(ctx context.Context) ([]domain.Popup, error) {
	var out []domain.Popup
	if err := c.do(ctx, http.MethodGet, "/popups", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Detail != "" {
			apiErr.Detail = payload.Detail
		} else if payload.Error != "" {
			apiErr.Detail = payload.Error
		}
	}
	return apiErr
}
