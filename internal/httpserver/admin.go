package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/domain"
)

// AdminAPI proxies the admin console's calls to the upstream. Role checks run
// twice: requireAdmin gates locally on the cached profile, the upstream
// enforces the real thing.
type AdminAPI interface {
	CreateProduct(ctx context.Context, draft api.ProductDraft) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, draft api.ProductDraft) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdminOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, update api.OrderStatusUpdate) (*domain.Order, error)
	AdminDiscounts(ctx context.Context) ([]domain.DiscountCode, error)
	CreateDiscount(ctx context.Context, draft api.DiscountDraft) (*domain.DiscountCode, error)
	UpdateDiscount(ctx context.Context, id string, draft api.DiscountDraft) (*domain.DiscountCode, error)
	DeleteDiscount(ctx context.Context, id string) error
	AdminPopups(ctx context.Context) ([]domain.Popup, error)
	CreatePopup(ctx context.Context, draft api.PopupDraft) (*domain.Popup, error)
	UpdatePopup(ctx context.Context, id string, draft api.PopupDraft) (*domain.Popup, error)
	DeletePopup(ctx context.Context, id string) error
	AdminUsers(ctx context.Context) ([]domain.Profile, error)
	AdminStats(ctx context.Context) (*api.Stats, error)
}

func registerAdminRoutes(g *gin.RouterGroup, admin AdminAPI) {
	g.POST("/products", func(c *gin.Context) {
		var draft api.ProductDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, "invalid body")
			return
		}
		product, err := admin.CreateProduct(c.Request.Context(), draft)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	})

	g.PUT("/products/:id", func(c *gin.Context) {
		var draft api.ProductDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, "invalid body")
			return
		}
		product, err := admin.UpdateProduct(c.Request.Context(), c.Param("id"), draft)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	})

	g.DELETE("/products/:id", func(c *gin.Context) {
		if err := admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	})

	g.GET("/orders", func(c *gin.Context) {
		orders, err := admin.AdminOrders(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	})

	g.PUT("/orders/:id", func(c *gin.Context) {
		var update api.OrderStatusUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			badRequest(c, "invalid body")
			return
		}
		order, err := admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), update)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	g.GET("/discounts", func(c *gin.Context) {
		discounts, err := admin.AdminDiscounts(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		if discounts == nil {
			discounts = []domain.DiscountCode{}
		}
		c.JSON(http.StatusOK, discounts)
	})

	g.POST("/discounts", func(c *gin.Context) {
		var draft api.DiscountDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, "invalid body")
			return
		}
		discount, err := admin.CreateDiscount(c.Request.Context(), draft)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusCreated, discount)
	})

	g.PUT("/discounts/:id", func(c *gin.Context) {
		var draft api.DiscountDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, "invalid body")
			return
		}
		discount, err := admin.UpdateDiscount(c.Request.Context(), c.Param("id"), draft)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, discount)
	})

	g.DELETE("/discounts/:id", func(c *gin.Context) {
		if err := admin.DeleteDiscount(c.Request.Context(), c.Param("id")); err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Discount deleted successfully"})
	})

	g.GET("/popups", func(c *gin.Context) {
		popups, err := admin.AdminPopups(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		if popups == nil {
			popups = []domain.Popup{}
		}
		c.JSON(http.StatusOK, popups)
	})

	g.POST("/popups", func(c *gin.Context) {
		var draft api.PopupDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, "invalid body")
			return
		}
		popup, err := admin.CreatePopup(c.Request.Context(), draft)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusCreated, popup)
	})

	g.PUT("/popups/:id", func(c *gin.Context) {
		var draft api.PopupDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, "invalid body")
			return
		}
		popup, err := admin.UpdatePopup(c.Request.Context(), c.Param("id"), draft)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, popup)
	})

	g.DELETE("/popups/:id", func(c *gin.Context) {
		if err := admin.DeletePopup(c.Request.Context(), c.Param("id")); err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Popup deleted successfully"})
	})

	g.GET("/users", func(c *gin.Context) {
		users, err := admin.AdminUsers(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		if users == nil {
			users = []domain.Profile{}
		}
		c.JSON(http.StatusOK, users)
	})

	g.GET("/stats", func(c *gin.Context) {
		stats, err := admin.AdminStats(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	})
}
