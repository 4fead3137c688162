package paymentControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
	orderControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/order"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
)

// HandleNotification receives the provider's asynchronous payment-status
// callback. An unknown order id answers 404 so the provider retries later;
// replays of a known status are harmless because the transition mapping is
// a pure function of the payload.
func HandleNotification(paysvc *services.PaymentService, ordersvc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var n gateway.Notification
		if err := c.ShouldBindJSON(&n); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid notification body"})
			return
		}
		if n.OrderID == "" || n.TransactionStatus == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "order_id and transaction_status are required"})
			return
		}

		payment, err := paysvc.ApplyNotification(c.Request.Context(), n)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrPaymentNotFound):
			log.Printf("notification for unknown order %s", n.OrderID)
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "unknown order_id"})
			return
		case errors.Is(err, services.ErrUnknownNotification):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		default:
			log.Printf("failed to apply notification for %s: %v", n.OrderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to process notification"})
			return
		}

		if order, err := ordersvc.AdminGet(c.Request.Context(), payment.OrderID); err == nil {
			orderControllers.BroadcastOrderUpdate(*order)
		}

		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// SyncStatus queries the gateway for an order's current transaction status
// and applies it, for when a notification was missed.
func SyncStatus(client *gateway.Client, paysvc *services.PaymentService, ordersvc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderNumber := c.Param("orderNumber")
		if orderNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderNumber is required"})
			return
		}

		ctx := c.Request.Context()
		order, err := ordersvc.GetByNumber(ctx, userID, orderNumber)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this order"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		n, err := client.QueryStatus(ctx, order.OrderNumber)
		if err != nil {
			log.Printf("status query failed for %s: %v", order.OrderNumber, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
			return
		}

		payment, err := paysvc.ApplyNotification(ctx, *n)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply gateway status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment": payment, "transaction_status": n.TransactionStatus})
	}
}
