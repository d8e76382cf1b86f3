package stubapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/domain"
)

func (s *Server) listProductsHandler(c *gin.Context) {
	category := c.Query("category")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Product{}
	for _, product := range s.products {
		if !product.IsActive {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		out = append(out, product)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) productBySlugHandler(c *gin.Context) {
	slug := c.Param("slug")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range s.products {
		if product.Slug == slug && product.IsActive {
			c.JSON(http.StatusOK, product)
			return
		}
	}
	notFound(c, "Product not found")
}

func (s *Server) listPopupsHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Popup{}
	for _, popup := range s.popups {
		if popup.IsActive {
			out = append(out, popup)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) validateDiscountHandler(c *gin.Context) {
	code := c.Query("code")
	amount, err := strconv.ParseFloat(c.Query("order_amount"), 64)
	if code == "" || err != nil {
		fail(c, http.StatusBadRequest, "code and order_amount are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, reduction, status, detail := s.applyDiscountLocked(code, amount, false)
	if detail != "" {
		fail(c, status, detail)
		return
	}
	c.JSON(http.StatusOK, api.DiscountResult{
		Valid:          true,
		DiscountAmount: reduction,
		Code:           code,
	})
}

// applyDiscountLocked resolves code against amount. With consume set it also
// counts the use. Callers hold s.mu. A non-empty detail means rejection.
func (s *Server) applyDiscountLocked(code string, amount float64, consume bool) (*domain.DiscountCode, float64, int, string) {
	var discount *domain.DiscountCode
	for i := range s.discounts {
		if s.discounts[i].Code == code {
			discount = &s.discounts[i]
			break
		}
	}
	if discount == nil {
		return nil, 0, http.StatusNotFound, "Invalid discount code"
	}

	now := time.Now()
	switch {
	case !discount.IsActive:
		return nil, 0, http.StatusBadRequest, "Discount code is not active"
	case now.Before(discount.ValidFrom):
		return nil, 0, http.StatusBadRequest, "Discount code is not active"
	case discount.ValidUntil != nil && now.After(*discount.ValidUntil):
		return nil, 0, http.StatusBadRequest, "Discount code has expired"
	case discount.MaxUses != nil && discount.UsesCount >= *discount.MaxUses:
		return nil, 0, http.StatusBadRequest, "Discount code usage limit reached"
	case amount < discount.MinOrderAmount:
		return nil, 0, http.StatusBadRequest,
			fmt.Sprintf("Minimum order amount is %.2f", discount.MinOrderAmount)
	}

	var reduction float64
	if discount.DiscountType == domain.DiscountTypePercentage {
		reduction = amount * discount.DiscountValue / 100
	} else {
		reduction = discount.DiscountValue
	}
	if reduction > amount {
		reduction = amount
	}

	if consume {
		discount.UsesCount++
	}
	return discount, reduction, 0, ""
}
