package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type sessionResponse struct {
	State   string          `json:"state"`
	Loading bool            `json:"loading"`
	User    *domain.Profile `json:"user"`
	IsAdmin bool            `json:"is_admin"`
}

func sessionSnapshot(holder SessionHolder) sessionResponse {
	return sessionResponse{
		State:   string(holder.State()),
		Loading: holder.Loading(),
		User:    holder.Profile(),
		IsAdmin: holder.IsAdmin(),
	}
}

func sessionHandler(holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sessionSnapshot(holder))
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password required")
			return
		}
		if _, err := holder.Login(c.Request.Context(), req.Email, req.Password); err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionSnapshot(holder))
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func registerHandler(holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password required")
			return
		}
		if _, err := holder.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.Phone); err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sessionSnapshot(holder))
	}
}

func logoutHandler(holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		holder.Logout(c.Request.Context())
		c.JSON(http.StatusOK, sessionSnapshot(holder))
	}
}

// requireAdmin guards the admin proxy on the session's role.
func requireAdmin(holder SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.Profile() == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}
		if !holder.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "admin access required"})
			return
		}
		c.Next()
	}
}
