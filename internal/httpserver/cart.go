package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type cartResponse struct {
	Items     []domain.LineItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

func cartSnapshot(store CartStore) cartResponse {
	items := store.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:     items,
		Total:     store.Total(),
		ItemCount: store.ItemCount(),
	}
}

func getCartHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

type addCartItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func addCartItemHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}
		if req.Product.ID == "" {
			badRequest(c, "product id required")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		store.Add(c.Request.Context(), req.Product, req.Quantity)
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}
		store.UpdateQuantity(c.Request.Context(), c.Param("productID"), req.Quantity)
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func removeCartItemHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Remove(c.Request.Context(), c.Param("productID"))
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func clearCartHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear(c.Request.Context())
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}
