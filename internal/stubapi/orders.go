package stubapi

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/api"
	"storefront/internal/domain"
)

func (s *Server) createOrderHandler(c *gin.Context) {
	profile := currentProfile(c)

	var draft api.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil || len(draft.Items) == 0 {
		fail(c, http.StatusBadRequest, "order must contain at least one item")
		return
	}
	currency := draft.Currency
	if currency == "" {
		currency = "INR"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check stock across the whole order before touching anything.
	var subtotal float64
	for _, item := range draft.Items {
		product := s.productByIDLocked(item.ProductID)
		if product == nil {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Product %s not found", item.ProductID))
			return
		}
		if product.Stock < item.Quantity {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", product.Name))
			return
		}
		subtotal += product.Price * float64(item.Quantity)
	}

	var discountAmount float64
	if draft.DiscountCode != "" {
		_, reduction, status, detail := s.applyDiscountLocked(draft.DiscountCode, subtotal, true)
		if detail != "" {
			fail(c, status, detail)
			return
		}
		discountAmount = reduction
	}

	for _, item := range draft.Items {
		s.productByIDLocked(item.ProductID).Stock -= item.Quantity
	}

	now := time.Now()
	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          profile.ID,
		UserEmail:       profile.Email,
		Items:           draft.Items,
		TotalAmount:     subtotal - discountAmount,
		Currency:        currency,
		Status:          domain.OrderStatusPending,
		ShippingAddress: draft.ShippingAddress,
		DiscountCode:    draft.DiscountCode,
		DiscountAmount:  discountAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.orders = append(s.orders, order)

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrdersHandler(c *gin.Context) {
	profile := currentProfile(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Order{}
	for _, order := range s.orders {
		if order.UserID == profile.ID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) orderByIDHandler(c *gin.Context) {
	profile := currentProfile(c)
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == id && order.UserID == profile.ID {
			c.JSON(http.StatusOK, order)
			return
		}
	}
	notFound(c, "Order not found")
}

func (s *Server) productByIDLocked(id string) *domain.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}
