package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/cart"
	chatbotControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/chatbot"
	checkoutControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/checkout"
	orderControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/order"
	userControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/user"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
)

// SetupUserRoutes registers all JWT-protected endpoints.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireUser)
	{
		// Profile
		userGroup.GET("/profile", userControllers.GetProfile(d.DB))
		userGroup.PUT("/profile", userControllers.UpdateProfile(d.DB))

		// Addresses
		addresses := userGroup.Group("/addresses")
		{
			addresses.GET("", userControllers.ListAddresses(d.DB))
			addresses.POST("", userControllers.CreateAddress(d.DB))
			addresses.PUT("/:id", userControllers.UpdateAddress(d.DB))
			addresses.DELETE("/:id", userControllers.DeleteAddress(d.DB))
		}

		// Shopping cart
		cart := userGroup.Group("/cart")
		{
			cart.GET("", cartControllers.GetCart(d.Carts))
			cart.POST("/items", cartControllers.AddItem(d.Carts))
			cart.PUT("/items/:product_id", cartControllers.SetQuantity(d.Carts))
			cart.DELETE("/items/:product_id", cartControllers.RemoveItem(d.Carts))
			cart.DELETE("", cartControllers.ClearCart(d.Carts))
		}

		// Step-by-step checkout
		checkout := userGroup.Group("/checkout")
		{
			checkout.POST("/start", checkoutControllers.Start(d.Checkout))
			checkout.POST("/:sessionID/address", checkoutControllers.SetAddress(d.Checkout))
			checkout.POST("/:sessionID/delivery", checkoutControllers.SetDelivery(d.Checkout))
			checkout.POST("/:sessionID/payment", checkoutControllers.SetPaymentMethod(d.Checkout))
			checkout.POST("/:sessionID/complete", checkoutControllers.Complete(d.DB, d.Checkout))
		}

		// Orders
		orders := userGroup.Group("/orders")
		{
			orders.POST("", orderControllers.PlaceOrder(d.DB, d.Orders, d.Carts, d.Payments, d.Gateway))
			orders.GET("", orderControllers.ListMyOrders(d.Orders))
			orders.GET("/:orderID", orderControllers.GetOrder(d.Orders))
			orders.POST("/:orderID/cancel", orderControllers.CancelOrder(d.Orders))
		}

		// Chatbot
		userGroup.POST("/chatbot", chatbotControllers.SendMessage(d.Chatbot))
	}

	// Real-time order feed. The upgrade handshake carries the token in a
	// query param, so it stays outside the Authorization-header group.
	r.GET("/ws/orders", orderControllers.OrderFeed)
}
