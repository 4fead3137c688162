package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-server-key"

func webhookRouter(t *testing.T, mode string) (*gin.Engine, *[]byte) {
	t.Helper()
	t.Setenv("MIDTRANS_SERVER_KEY", testServerKey)
	t.Setenv("MIDTRANS_MODE", mode)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	// The handler re-reads the body, so capture what it sees.
	var handlerBody []byte
	r.POST("/payment-notification", VerifyWebhookSignature(), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		handlerBody = body
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	return r, &handlerBody
}

func notificationBody(t *testing.T, n gateway.Notification) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(n)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestVerifyWebhookSignature_ValidSignaturePasses(t *testing.T) {
	r, handlerBody := webhookRouter(t, "production")

	n := gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "215000.00",
	}
	n.SignatureKey = gateway.Signature(n.OrderID, n.StatusCode, n.GrossAmount, testServerKey)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-notification", notificationBody(t, n))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// Body restoration: the handler must see the full payload again.
	var seen gateway.Notification
	require.NoError(t, json.Unmarshal(*handlerBody, &seen))
	assert.Equal(t, n.OrderID, seen.OrderID)
	assert.Equal(t, n.TransactionStatus, seen.TransactionStatus)
}

func TestVerifyWebhookSignature_InvalidSignatureRejected(t *testing.T) {
	r, _ := webhookRouter(t, "production")

	n := gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "215000.00",
		SignatureKey:      "deadbeef",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-notification", notificationBody(t, n))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyWebhookSignature_MissingSignatureRejected(t *testing.T) {
	r, _ := webhookRouter(t, "production")

	n := gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "215000.00",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-notification", notificationBody(t, n))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyWebhookSignature_SandboxSkipsCheck(t *testing.T) {
	r, _ := webhookRouter(t, "sandbox")

	// No signature at all; sandbox mode lets it through.
	n := gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "215000.00",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-notification", notificationBody(t, n))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyWebhookSignature_MalformedBodyRejected(t *testing.T) {
	r, _ := webhookRouter(t, "production")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-notification", bytes.NewBufferString("{not json"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
