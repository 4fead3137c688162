package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
	"gorm.io/gorm"
)

type addressRequest struct {
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type deliveryRequest struct {
	Method string `json:"method" binding:"required"`
}

type paymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCheckoutNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCheckoutStep),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidDelivery),
		errors.Is(err, models.ErrInvalidPaymentMethod),
		errors.Is(err, repository.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
	}
}

// POST /checkout
func Start(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		session, err := svc.Start(c.Request.Context(), userID)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// POST /checkout/:sessionID/address
func SetAddress(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		session, err := svc.SetAddress(c.Request.Context(), userID, c.Param("sessionID"), models.Address{
			UserID:     userID,
			Recipient:  req.Recipient,
			Phone:      req.Phone,
			Street:     req.Street,
			City:       req.City,
			Province:   req.Province,
			PostalCode: req.PostalCode,
		})
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// POST /checkout/:sessionID/delivery
func SetDelivery(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req deliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		session, err := svc.SetDelivery(c.Request.Context(), userID, c.Param("sessionID"), models.DeliveryMethod(req.Method))
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// POST /checkout/:sessionID/payment
func SetPaymentMethod(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req paymentMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		method, err := models.ParsePaymentMethod(req.Method)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session, err := svc.SetPaymentMethod(c.Request.Context(), userID, c.Param("sessionID"), method)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// POST /checkout/:sessionID/complete
func Complete(db *gorm.DB, svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		result, err := svc.Complete(c.Request.Context(), userID, c.Param("sessionID"), gateway.Customer{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		})
		if err != nil {
			// A placed order with a failed token request still comes back;
			// the client can retry through the payment endpoint.
			if result != nil && result.Order != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable", "order": result.Order})
				return
			}
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
