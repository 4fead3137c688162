// Package gateway wraps the hosted-checkout payment provider: Snap token
// creation, transaction status queries and notification signatures.
package gateway

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
)

// Config holds provider credentials, read from the environment.
type Config struct {
	ServerKey string
	SnapURL   string
	APIURL    string
	Sandbox   bool
}

// ConfigFromEnv fails fast when credentials are missing so a misconfigured
// deployment dies at boot instead of at the first checkout.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		SnapURL:   os.Getenv("MIDTRANS_SNAP_URL"),
		APIURL:    os.Getenv("MIDTRANS_API_URL"),
	}
	mode := strings.ToLower(os.Getenv("MIDTRANS_MODE"))
	cfg.Sandbox = mode == "sandbox" || mode == "dev"

	if cfg.ServerKey == "" || cfg.SnapURL == "" || cfg.APIURL == "" {
		return Config{}, fmt.Errorf("midtrans configuration missing")
	}
	return cfg, nil
}

// Customer is the buyer detail block sent with a token request.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Notification is the asynchronous payment-status callback payload. The
// provider's order_id is our order number, not the internal order id.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// Signature computes the notification digest:
// sha512(order_id + status_code + gross_amount + server_key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

type snapResponse struct {
	Token        string   `json:"token"`
	RedirectURL  string   `json:"redirect_url"`
	ErrorMessage []string `json:"error_messages"`
}

// CreateToken requests a hosted-checkout token for an order. The item list
// is reconciled against the order total with a shipping remainder line, so
// the gross amount the provider sees always matches the payment amount.
func (c *Client) CreateToken(ctx context.Context, order *models.Order, customer Customer) (token, redirectURL string, err error) {
	items := make([]map[string]interface{}, 0, len(order.Items)+1)
	var itemSum float64
	for _, it := range order.Items {
		itemSum += it.Subtotal()
		items = append(items, map[string]interface{}{
			"id":       fmt.Sprintf("%d", it.ProductID),
			"price":    it.ProductPrice,
			"quantity": it.Quantity,
			"name":     it.ProductName,
		})
	}
	if remainder := order.TotalAmount - itemSum; remainder > 0 {
		items = append(items, map[string]interface{}{
			"id":       "SHIPPING",
			"price":    remainder,
			"quantity": 1,
			"name":     "Shipping (" + string(order.DeliveryMethod) + ")",
		})
	}

	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     order.OrderNumber,
			"gross_amount": order.TotalAmount,
		},
		"item_details": items,
		"customer_details": map[string]interface{}{
			"first_name": customer.Name,
			"email":      customer.Email,
			"phone":      customer.Phone,
		},
	}

	body, err := c.post(ctx, c.cfg.SnapURL, payload)
	if err != nil {
		return "", "", err
	}

	var snap snapResponse
	if err := json.Unmarshal(body, &snap); err != nil {
		return "", "", fmt.Errorf("failed to parse snap response: %w", err)
	}
	if len(snap.ErrorMessage) > 0 {
		return "", "", fmt.Errorf("midtrans error: %s", strings.Join(snap.ErrorMessage, "; "))
	}
	if snap.Token == "" {
		return "", "", fmt.Errorf("midtrans returned empty snap token")
	}
	return snap.Token, snap.RedirectURL, nil
}

// QueryStatus fetches the current transaction status for an order number.
func (c *Client) QueryStatus(ctx context.Context, orderNumber string) (*Notification, error) {
	url := strings.TrimRight(c.cfg.APIURL, "/") + "/v2/" + orderNumber + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.ServerKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach midtrans: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("midtrans API error (%d): %s", resp.StatusCode, string(body))
	}

	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}
	return &n, nil
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.ServerKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach midtrans: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("midtrans API error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
