package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"storefront/internal/domain"
)

// Admin calls mirror the upstream's /admin surface. They still go through the
// same bearer token; the upstream enforces the ADMIN role.

type ProductDraft struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Category    string   `json:"category,omitempty"`
}

type DiscountDraft struct {
	Code           string     `json:"code"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
}

type PopupDraft struct {
	Title           string `json:"title"`
	Message         string `json:"message"`
	DiscountCode    string `json:"discount_code,omitempty"`
	DisplayDuration int    `json:"display_duration,omitempty"`
}

type OrderStatusUpdate struct {
	Status      string `json:"status"`
	CourierName string `json:"courier_name,omitempty"`
	TrackingID  string `json:"tracking_id,omitempty"`
}

type Stats struct {
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalUsers    int     `json:"total_users"`
	TotalProducts int     `json:"total_products"`
	PendingOrders int     `json:"pending_orders"`
}

func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, draft ProductDraft) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+url.PathEscape(id), nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/products/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, update OrderStatusUpdate) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(id), nil, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDiscounts(ctx context.Context) ([]domain.DiscountCode, error) {
	var out []domain.DiscountCode
	if err := c.do(ctx, http.MethodGet, "/admin/discounts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDiscount(ctx context.Context, draft DiscountDraft) (*domain.DiscountCode, error) {
	var out domain.DiscountCode
	if err := c.do(ctx, http.MethodPost, "/admin/discounts", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDiscount(ctx context.Context, id string, draft DiscountDraft) (*domain.DiscountCode, error) {
	var out domain.DiscountCode
	if err := c.do(ctx, http.MethodPut, "/admin/discounts/"+url.PathEscape(id), nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDiscount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/discounts/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AdminPopups(ctx context.Context) ([]domain.Popup, error) {
	var out []domain.Popup
	if err := c.do(ctx, http.MethodGet, "/admin/popups", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePopup(ctx context.Context, draft PopupDraft) (*domain.Popup, error) {
	var out domain.Popup
	if err := c.do(ctx, http.MethodPost, "/admin/popups", nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePopup(ctx context.Context, id string, draft PopupDraft) (*domain.Popup, error) {
	var out domain.Popup
	if err := c.do(ctx, http.MethodPut, "/admin/popups/"+url.PathEscape(id), nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePopup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/popups/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AdminUsers(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminStats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
