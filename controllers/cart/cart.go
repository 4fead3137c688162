package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
)

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /cart
func GetCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := svc.Get(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		total, err := svc.Total(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cart total"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart, "total": total})
	}
}

// POST /cart/items
func AddItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		item, err := svc.Add(c.Request.Context(), userID, req.ProductID, req.Quantity)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, item)
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		}
	}
}

// PUT /cart/items/:product_id
func SetQuantity(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		err = svc.SetQuantity(c.Request.Context(), userID, uint(productID), req.Quantity)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
		case errors.Is(err, repository.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		}
	}
}

// DELETE /cart/items/:product_id
func RemoveItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		err = svc.Remove(c.Request.Context(), userID, uint(productID))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
		case errors.Is(err, repository.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		}
	}
}

// DELETE /cart
func ClearCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := svc.Clear(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
