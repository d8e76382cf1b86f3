package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func listProductsHandler(catalog CatalogAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Products(c.Request.Context(), c.Query("category"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(catalog CatalogAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.ProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listOrdersHandler(catalog CatalogAPI, holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.Profile() == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}
		orders, err := catalog.Orders(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(catalog CatalogAPI, holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.Profile() == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}
		order, err := catalog.Order(c.Request.Context(), c.Param("id"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
