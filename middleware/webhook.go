package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
)

// VerifyWebhookSignature checks the provider digest on incoming payment
// notifications before the handler trusts the payload. Sandbox/dev mode
// skips the check so local testing works without real credentials.
func VerifyWebhookSignature() gin.HandlerFunc {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		panic("MIDTRANS_SERVER_KEY is not set")
	}

	mode := strings.ToLower(os.Getenv("MIDTRANS_MODE"))
	skip := mode == "sandbox" || mode == "dev"

	return func(c *gin.Context) {
		if skip {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "failed to read body"})
			c.Abort()
			return
		}
		// The handler needs to read the body again.
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var n gateway.Notification
		if err := json.Unmarshal(body, &n); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid notification body"})
			c.Abort()
			return
		}
		if n.SignatureKey == "" {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "missing signature_key"})
			c.Abort()
			return
		}

		expected := gateway.Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
		if !strings.EqualFold(expected, n.SignatureKey) {
			log.Printf("webhook signature mismatch for order %s", n.OrderID)
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "invalid signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
