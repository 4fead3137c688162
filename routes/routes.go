package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
	"gorm.io/gorm"
)

// Deps carries everything the route groups need. main builds it once.
type Deps struct {
	DB       *gorm.DB
	Carts    *services.CartService
	Orders   *services.OrderService
	Payments *services.PaymentService
	Checkout *services.CheckoutService
	Chatbot  *services.ChatbotService
	Gateway  *gateway.Client
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, d)

	// Public catalog browsing
	SetupCatalogRoutes(r, d)

	// User routes (JWT-protected): profile, cart, checkout, orders, chatbot
	SetupUserRoutes(r, d)

	// Payment gateway webhook + status sync
	SetupPaymentRoutes(r, d)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, d)
}
