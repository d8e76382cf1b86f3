package domain

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Size        string  `json:"size,omitempty"`
}

type Order struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	UserEmail       string            `json:"user_email"`
	Items           []OrderItem       `json:"items"`
	TotalAmount     float64           `json:"total_amount"`
	Currency        string            `json:"currency"`
	Status          string            `json:"status"`
	CourierName     string            `json:"courier_name,omitempty"`
	TrackingID      string            `json:"tracking_id,omitempty"`
	ShippingAddress map[string]string `json:"shipping_address"`
	DiscountCode    string            `json:"discount_code,omitempty"`
	DiscountAmount  float64           `json:"discount_amount"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
