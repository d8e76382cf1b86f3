package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/session"
)

// CartStore is the cart model behind the cart routes.
type CartStore interface {
	Items() []domain.LineItem
	Add(ctx context.Context, product domain.Product, quantity int)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	Remove(ctx context.Context, productID string)
	Clear(ctx context.Context)
	Total() float64
	ItemCount() int
}

// SessionHolder gates checkout and the admin proxy.
type SessionHolder interface {
	State() session.State
	Loading() bool
	Profile() *domain.Profile
	IsAdmin() bool
	Login(ctx context.Context, email, password string) (*domain.Profile, error)
	Register(ctx context.Context, email, password, fullName, phone string) (*domain.Profile, error)
	Logout(ctx context.Context)
}

// CheckoutService validates discounts and places orders.
type CheckoutService interface {
	ApplyDiscount(ctx context.Context, code string) (float64, error)
	PlaceOrder(ctx context.Context, in checkout.PlaceOrderInput) (*domain.Order, error)
}

// PopupScheduler exposes the active promotional popup.
type PopupScheduler interface {
	Current() *domain.Popup
	Dismiss(id string)
	Refresh(ctx context.Context)
}

// CatalogAPI proxies catalog and order-history reads to the upstream.
type CatalogAPI interface {
	Products(ctx context.Context, category string) ([]domain.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Order(ctx context.Context, id string) (*domain.Order, error)
}

// Deps collects everything the routes need.
type Deps struct {
	Cart     CartStore
	Session  SessionHolder
	Checkout CheckoutService
	Popups   PopupScheduler
	Catalog  CatalogAPI
	Admin    AdminAPI
}

// buildRouter wires routes for the storefront.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/products", listProductsHandler(deps.Catalog))
		apiGroup.GET("/products/:slug", getProductHandler(deps.Catalog))

		apiGroup.GET("/session", sessionHandler(deps.Session))
		apiGroup.POST("/session/login", loginHandler(deps.Session))
		apiGroup.POST("/session/register", registerHandler(deps.Session))
		apiGroup.POST("/session/logout", logoutHandler(deps.Session))

		apiGroup.GET("/cart", getCartHandler(deps.Cart))
		apiGroup.POST("/cart/items", addCartItemHandler(deps.Cart))
		apiGroup.PUT("/cart/items/:productID", updateCartItemHandler(deps.Cart))
		apiGroup.DELETE("/cart/items/:productID", removeCartItemHandler(deps.Cart))
		apiGroup.DELETE("/cart", clearCartHandler(deps.Cart))

		apiGroup.POST("/checkout/discount", applyDiscountHandler(deps.Checkout, deps.Cart))
		apiGroup.POST("/checkout/orders", placeOrderHandler(deps.Checkout))

		apiGroup.GET("/orders", listOrdersHandler(deps.Catalog, deps.Session))
		apiGroup.GET("/orders/:id", getOrderHandler(deps.Catalog, deps.Session))

		apiGroup.GET("/popup", currentPopupHandler(deps.Popups))
		apiGroup.POST("/popup/:id/dismiss", dismissPopupHandler(deps.Popups))

		adminGroup := apiGroup.Group("/admin", requireAdmin(deps.Session))
		registerAdminRoutes(adminGroup, deps.Admin)
	}

	return router
}
