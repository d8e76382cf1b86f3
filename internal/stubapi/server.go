// Package stubapi is an in-memory rendition of the upstream commerce API,
// used for local development and tests. Nothing survives a restart.
package stubapi

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type userRecord struct {
	domain.Profile
	PasswordHash []byte
}

// Server owns all upstream state behind a single mutex. Handlers mirror the
// real API's routes, status codes and error bodies.
type Server struct {
	mu        sync.Mutex
	logger    *log.Logger
	jwtSecret []byte

	users     map[string]*userRecord // keyed by user ID
	products  []domain.Product
	orders    []domain.Order
	discounts []domain.DiscountCode
	popups    []domain.Popup
}

func New(logger *log.Logger, jwtSecret string) *Server {
	return &Server{
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		users:     make(map[string]*userRecord),
	}
}

// Router builds the gin engine with every route mounted under /api.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/auth/register", s.registerHandler)
		apiGroup.POST("/auth/login", s.loginHandler)
		apiGroup.GET("/auth/me", s.requireUser, s.meHandler)

		apiGroup.GET("/products", s.listProductsHandler)
		apiGroup.GET("/products/:slug", s.productBySlugHandler)
		apiGroup.GET("/popups", s.listPopupsHandler)
		apiGroup.POST("/discount/validate", s.validateDiscountHandler)

		apiGroup.POST("/orders", s.requireUser, s.createOrderHandler)
		apiGroup.GET("/orders", s.requireUser, s.listOrdersHandler)
		apiGroup.GET("/orders/:id", s.requireUser, s.orderByIDHandler)

		admin := apiGroup.Group("/admin", s.requireUser, s.requireAdmin)
		{
			admin.POST("/products", s.adminCreateProductHandler)
			admin.PUT("/products/:id", s.adminUpdateProductHandler)
			admin.DELETE("/products/:id", s.adminDeleteProductHandler)
			admin.GET("/orders", s.adminListOrdersHandler)
			admin.PUT("/orders/:id", s.adminUpdateOrderHandler)
			admin.GET("/discounts", s.adminListDiscountsHandler)
			admin.POST("/discounts", s.adminCreateDiscountHandler)
			admin.PUT("/discounts/:id", s.adminUpdateDiscountHandler)
			admin.DELETE("/discounts/:id", s.adminDeleteDiscountHandler)
			admin.GET("/popups", s.adminListPopupsHandler)
			admin.POST("/popups", s.adminCreatePopupHandler)
			admin.PUT("/popups/:id", s.adminUpdatePopupHandler)
			admin.DELETE("/popups/:id", s.adminDeletePopupHandler)
			admin.GET("/users", s.adminListUsersHandler)
			admin.GET("/stats", s.adminStatsHandler)
		}
	}
	return router
}

func fail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func notFound(c *gin.Context, detail string) {
	fail(c, http.StatusNotFound, detail)
}
