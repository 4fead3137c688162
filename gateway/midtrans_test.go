package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *models.Order {
	return &models.Order{
		OrderNumber:    "ORD-20250101-a1b2c3d4",
		TotalAmount:    215000,
		DeliveryMethod: models.DeliveryExpress,
		Items: []models.OrderItem{
			{ProductID: 7, ProductName: "Watch", ProductPrice: 100000, Quantity: 2},
		},
	}
}

func TestCreateToken(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "server-key", user)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token":        "tok-abc",
			"redirect_url": "https://app.sandbox/redirect/tok-abc",
		})
	}))
	defer srv.Close()

	client := NewClient(Config{ServerKey: "server-key", SnapURL: srv.URL, APIURL: srv.URL})
	token, redirect, err := client.CreateToken(context.Background(), testOrder(), Customer{Name: "Budi", Email: "budi@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, "https://app.sandbox/redirect/tok-abc", redirect)

	// gross_amount matches the order total and a shipping remainder line
	// covers total - item subtotals.
	td := captured["transaction_details"].(map[string]interface{})
	assert.Equal(t, float64(215000), td["gross_amount"])
	assert.Equal(t, "ORD-20250101-a1b2c3d4", td["order_id"])

	items := captured["item_details"].([]interface{})
	require.Len(t, items, 2)
	shipping := items[1].(map[string]interface{})
	assert.Equal(t, "SHIPPING", shipping["id"])
	assert.Equal(t, float64(15000), shipping["price"])
}

func TestCreateToken_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"error_messages":["transaction_details.gross_amount is required"]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{ServerKey: "server-key", SnapURL: srv.URL, APIURL: srv.URL})
	_, _, err := client.CreateToken(context.Background(), testOrder(), Customer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gross_amount is required")
}

func TestCreateToken_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{ServerKey: "bad-key", SnapURL: srv.URL, APIURL: srv.URL})
	_, _, err := client.CreateToken(context.Background(), testOrder(), Customer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "midtrans API error (401)")
}

func TestQueryStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/ORD-20250101-a1b2c3d4/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Notification{
			OrderID:           "ORD-20250101-a1b2c3d4",
			TransactionID:     "mid-123",
			TransactionStatus: "settlement",
		})
	}))
	defer srv.Close()

	client := NewClient(Config{ServerKey: "server-key", SnapURL: srv.URL, APIURL: srv.URL})
	n, err := client.QueryStatus(context.Background(), "ORD-20250101-a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "settlement", n.TransactionStatus)
	assert.Equal(t, "mid-123", n.TransactionID)
}

func TestSignature(t *testing.T) {
	sig := Signature("ORD-20250101-a1b2c3d4", "200", "215000.00", "server-key")
	assert.Len(t, sig, 128)
	// Deterministic for the same inputs, different for a different key.
	assert.Equal(t, sig, Signature("ORD-20250101-a1b2c3d4", "200", "215000.00", "server-key"))
	assert.NotEqual(t, sig, Signature("ORD-20250101-a1b2c3d4", "200", "215000.00", "other-key"))
}

func TestConfigFromEnv_MissingCredentials(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "")
	t.Setenv("MIDTRANS_SNAP_URL", "")
	t.Setenv("MIDTRANS_API_URL", "")

	_, err := ConfigFromEnv()
	assert.Error(t, err)
}
