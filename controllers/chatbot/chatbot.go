package chatbotControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
)

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

// POST /chatbot/message
func SendMessage(svc *services.ChatbotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		reply, err := svc.Reply(c.Request.Context(), userID, req.Message)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reply"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
