package repository

import (
	"context"
	"errors"

	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	SearchByName(ctx context.Context, q string, limit int) ([]models.Product, error)
}

type CartRepository interface {
	// GetByUser returns the user's cart, creating it on first access.
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, productID uint) (*models.CartItem, error)
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, productID uint) error
	ClearItems(ctx context.Context, cartID uint) error
}

type OrderRepository interface {
	// CreateWithPayment persists the order, its items and its payment in
	// one transaction, locking and decrementing product stock per item.
	// Nothing is written if any product is missing or under-stocked.
	CreateWithPayment(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus) error
}

type PaymentRepository interface {
	// FindByOrderNumber resolves a provider-side order_id (our order
	// number) to the payment row it belongs to.
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID uint, status models.PaymentStatus) error
	SetGatewayRef(ctx context.Context, paymentID uint, token, transactionID string) error
}
