package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/payment"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
)

// SetupPaymentRoutes registers the gateway webhook and the
// user-triggered status sync.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	// Webhook endpoint: middleware handles sandbox/prod verification
	r.POST("/payment-notification",
		middleware.VerifyWebhookSignature(),
		paymentControllers.HandleNotification(d.Payments, d.Orders),
	)

	payment := r.Group("/payment")
	{
		payment.POST("/:orderNumber/sync",
			middleware.RequireUser,
			paymentControllers.SyncStatus(d.Gateway, d.Payments, d.Orders),
		)
	}
}
