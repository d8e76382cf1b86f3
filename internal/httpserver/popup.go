package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func currentPopupHandler(scheduler PopupScheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := scheduler.Current()
		if current == nil {
			c.JSON(http.StatusOK, gin.H{"popup": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"popup": current})
	}
}

func dismissPopupHandler(scheduler PopupScheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduler.Dismiss(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"dismissed": c.Param("id")})
	}
}
