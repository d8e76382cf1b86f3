package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
)

type applyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

func applyDiscountHandler(svc CheckoutService, store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "code required")
			return
		}
		amount, err := svc.ApplyDiscount(c.Request.Context(), req.Code)
		if err != nil {
			upstreamError(c, err)
			return
		}
		subtotal := store.Total()
		c.JSON(http.StatusOK, gin.H{
			"code":            req.Code,
			"discount_amount": amount,
			"subtotal":        subtotal,
			"final_total":     subtotal - amount,
		})
	}
}

type placeOrderRequest struct {
	ShippingAddress map[string]string `json:"shipping_address" binding:"required"`
	Currency        string            `json:"currency"`
	DiscountCode    string            `json:"discount_code"`
}

func placeOrderHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "shipping address required")
			return
		}
		order, err := svc.PlaceOrder(c.Request.Context(), checkout.PlaceOrderInput{
			ShippingAddress: req.ShippingAddress,
			Currency:        req.Currency,
			DiscountCode:    req.DiscountCode,
		})
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
