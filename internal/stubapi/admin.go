package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/api"
	"storefront/internal/domain"
)

func (s *Server) adminCreateProductHandler(c *gin.Context) {
	var draft api.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil || draft.Name == "" || draft.Slug == "" {
		fail(c, http.StatusBadRequest, "name and slug are required")
		return
	}

	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Slug:        draft.Slug,
		Description: draft.Description,
		Price:       draft.Price,
		Stock:       draft.Stock,
		Images:      draft.Images,
		Category:    draft.Category,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, product)
}

func (s *Server) adminUpdateProductHandler(c *gin.Context) {
	var draft api.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.productByIDLocked(c.Param("id"))
	if product == nil {
		notFound(c, "Product not found")
		return
	}
	product.Name = draft.Name
	product.Slug = draft.Slug
	product.Description = draft.Description
	product.Price = draft.Price
	product.Stock = draft.Stock
	product.Images = draft.Images
	product.Category = draft.Category

	c.JSON(http.StatusOK, *product)
}

func (s *Server) adminDeleteProductHandler(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
			return
		}
	}
	notFound(c, "Product not found")
}

func (s *Server) adminListOrdersHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminUpdateOrderHandler(c *gin.Context) {
	var update api.OrderStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil || update.Status == "" {
		fail(c, http.StatusBadRequest, "status is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != c.Param("id") {
			continue
		}
		s.orders[i].Status = update.Status
		if update.CourierName != "" {
			s.orders[i].CourierName = update.CourierName
		}
		if update.TrackingID != "" {
			s.orders[i].TrackingID = update.TrackingID
		}
		s.orders[i].UpdatedAt = time.Now()
		c.JSON(http.StatusOK, s.orders[i])
		return
	}
	notFound(c, "Order not found")
}

func (s *Server) adminListDiscountsHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.DiscountCode, len(s.discounts))
	copy(out, s.discounts)
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminCreateDiscountHandler(c *gin.Context) {
	var draft api.DiscountDraft
	if err := c.ShouldBindJSON(&draft); err != nil || draft.Code == "" {
		fail(c, http.StatusBadRequest, "code is required")
		return
	}

	discount := domain.DiscountCode{
		ID:             uuid.NewString(),
		Code:           draft.Code,
		DiscountType:   draft.DiscountType,
		DiscountValue:  draft.DiscountValue,
		MinOrderAmount: draft.MinOrderAmount,
		MaxUses:        draft.MaxUses,
		IsActive:       true,
		ValidFrom:      time.Now(),
		ValidUntil:     draft.ValidUntil,
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	s.discounts = append(s.discounts, discount)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, discount)
}

func (s *Server) adminUpdateDiscountHandler(c *gin.Context) {
	var draft api.DiscountDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.discounts {
		if s.discounts[i].ID != c.Param("id") {
			continue
		}
		s.discounts[i].Code = draft.Code
		s.discounts[i].DiscountType = draft.DiscountType
		s.discounts[i].DiscountValue = draft.DiscountValue
		s.discounts[i].MinOrderAmount = draft.MinOrderAmount
		s.discounts[i].MaxUses = draft.MaxUses
		s.discounts[i].ValidUntil = draft.ValidUntil
		c.JSON(http.StatusOK, s.discounts[i])
		return
	}
	notFound(c, "Discount not found")
}

func (s *Server) adminDeleteDiscountHandler(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.discounts {
		if s.discounts[i].ID == id {
			s.discounts = append(s.discounts[:i], s.discounts[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Discount deleted successfully"})
			return
		}
	}
	notFound(c, "Discount not found")
}

func (s *Server) adminListPopupsHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Popup, len(s.popups))
	copy(out, s.popups)
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminCreatePopupHandler(c *gin.Context) {
	var draft api.PopupDraft
	if err := c.ShouldBindJSON(&draft); err != nil || draft.Title == "" {
		fail(c, http.StatusBadRequest, "title is required")
		return
	}

	duration := draft.DisplayDuration
	if duration <= 0 {
		duration = 5000
	}
	popup := domain.Popup{
		ID:              uuid.NewString(),
		Title:           draft.Title,
		Message:         draft.Message,
		DiscountCode:    draft.DiscountCode,
		IsActive:        true,
		DisplayDuration: duration,
		CreatedAt:       time.Now(),
	}

	s.mu.Lock()
	s.popups = append(s.popups, popup)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, popup)
}

func (s *Server) adminUpdatePopupHandler(c *gin.Context) {
	var draft api.PopupDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.popups {
		if s.popups[i].ID != c.Param("id") {
			continue
		}
		s.popups[i].Title = draft.Title
		s.popups[i].Message = draft.Message
		s.popups[i].DiscountCode = draft.DiscountCode
		if draft.DisplayDuration > 0 {
			s.popups[i].DisplayDuration = draft.DisplayDuration
		}
		c.JSON(http.StatusOK, s.popups[i])
		return
	}
	notFound(c, "Popup not found")
}

func (s *Server) adminDeletePopupHandler(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.popups {
		if s.popups[i].ID == id {
			s.popups = append(s.popups[:i], s.popups[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Popup deleted successfully"})
			return
		}
	}
	notFound(c, "Popup not found")
}

func (s *Server) adminListUsersHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Profile{}
	for _, user := range s.users {
		out = append(out, user.Profile)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminStatsHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := api.Stats{
		TotalOrders:   len(s.orders),
		TotalUsers:    len(s.users),
		TotalProducts: len(s.products),
	}
	for _, order := range s.orders {
		if order.Status != domain.OrderStatusCancelled {
			stats.TotalRevenue += order.TotalAmount
		}
		if order.Status == domain.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	c.JSON(http.StatusOK, stats)
}
