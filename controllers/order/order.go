package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
	"gorm.io/gorm"
)

type placeOrderRequest struct {
	AddressID      uint   `json:"address_id" binding:"required"`
	DeliveryMethod string `json:"delivery_method" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(status) {
	case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return models.OrderStatus(status), nil
	default:
		return "", errors.New("invalid order status")
	}
}

// PlaceOrder is the one-shot checkout API: address reference, delivery and
// payment method in, created order (plus gateway token when needed) out.
func PlaceOrder(db *gorm.DB, ordersvc *services.OrderService, cartsvc *services.CartService, paysvc *services.PaymentService, tokens services.TokenCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		method, err := models.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var address models.Address
		if err := db.First(&address, "id = ? AND user_id = ?", req.AddressID, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		ctx := c.Request.Context()
		order, err := ordersvc.Checkout(ctx, userID, address, models.DeliveryMethod(req.DeliveryMethod), method)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrInvalidDelivery),
			errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		resp := gin.H{"order": order, "payment": order.Payment}
		if method == models.PaymentMethodMidtrans {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err != nil {
				// The order exists; the client can retry token creation
				// through the payment sync endpoint.
				log.Printf("failed to load user %s for snap token: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare payment", "order": order})
				return
			}
			token, redirect, tokenErr := tokens.CreateToken(ctx, order, gateway.Customer{
				Name:  user.Name,
				Email: user.Email,
				Phone: user.Phone,
			})
			if tokenErr != nil {
				log.Printf("snap token creation failed for %s: %v", order.OrderNumber, tokenErr)
				c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable", "order": order})
				return
			}
			if err := paysvc.AttachToken(ctx, order.Payment.ID, token); err != nil {
				log.Printf("failed to store snap token for %s: %v", order.OrderNumber, err)
			}
			resp["snap_token"] = token
			resp["redirect_url"] = redirect
		}

		// Order placement leaves the cart alone; clearing is our job.
		if err := cartsvc.Clear(ctx, userID); err != nil {
			log.Printf("failed to clear cart for %s: %v", userID, err)
		}

		BroadcastOrderUpdate(*order)
		c.JSON(http.StatusCreated, resp)
	}
}

// GET /orders
func ListMyOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orders, err := svc.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID — owner only.
func GetOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		order, err := svc.Get(c.Request.Context(), userID, uint(orderID))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, order)
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
	}
}

// POST /orders/:orderID/cancel
func CancelOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		order, err := svc.Cancel(c.Request.Context(), userID, uint(orderID))
		switch {
		case err == nil:
			BroadcastOrderUpdate(*order)
			c.JSON(http.StatusOK, order)
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this order"})
		case errors.Is(err, services.ErrNotCancellable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		}
	}
}

// GET /admin/orders
func ListAllOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatus(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		status, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = svc.UpdateStatus(c.Request.Context(), uint(orderID), status)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
	}
}
