// Package checkout drives discount validation and order placement.
package checkout

import (
	"context"
	"errors"
	"log"

	"storefront/internal/api"
	"storefront/internal/domain"
	"storefront/internal/notify"
)

type cartStore interface {
	Items() []domain.LineItem
	Total() float64
	Clear(ctx context.Context)
}

type checkoutAPI interface {
	ValidateDiscount(ctx context.Context, code string, orderAmount float64) (*api.DiscountResult, error)
	CreateOrder(ctx context.Context, draft api.OrderDraft) (*domain.Order, error)
}

type sessionHolder interface {
	Profile() *domain.Profile
}

var ErrEmptyCart = errors.New("cart is empty")

// Service ties the cart, the session gate and the upstream order endpoints
// together. A successful placement clears the cart; any failure leaves it
// untouched.
type Service struct {
	cart    cartStore
	client  checkoutAPI
	session sessionHolder
	bus     *notify.Bus
	logger  *log.Logger
}

func New(cart cartStore, client checkoutAPI, session sessionHolder, bus *notify.Bus, logger *log.Logger) *Service {
	return &Service{cart: cart, client: client, session: session, bus: bus, logger: logger}
}

// ApplyDiscount validates code against the current cart subtotal and returns
// the reduction the upstream computed. An empty code yields zero without a
// call.
func (s *Service) ApplyDiscount(ctx context.Context, code string) (float64, error) {
	if code == "" {
		return 0, nil
	}
	res, err := s.client.ValidateDiscount(ctx, code, s.cart.Total())
	if err != nil {
		s.bus.Error(upstreamMessage(err, "Invalid discount code"))
		return 0, err
	}
	s.bus.Success("Discount applied!")
	return res.DiscountAmount, nil
}

type PlaceOrderInput struct {
	ShippingAddress map[string]string
	Currency        string
	DiscountCode    string
}

// PlaceOrder creates the order upstream from the cart's line items. Checkout
// is gated on an authenticated session; the final total, including any
// discount, is computed upstream from the submitted code.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if s.session.Profile() == nil {
		return nil, domain.ErrUnauthenticated
	}
	lines := s.cart.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}

	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	order, err := s.client.CreateOrder(ctx, api.OrderDraft{
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		Currency:        currency,
		DiscountCode:    in.DiscountCode,
	})
	if err != nil {
		s.bus.Error(upstreamMessage(err, "Failed to place order"))
		return nil, err
	}

	s.cart.Clear(ctx)
	s.bus.Success("Order placed successfully!")
	return order, nil
}

func upstreamMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
