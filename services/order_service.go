package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/ivanfarhani22/management-ecommerce-sub000/events"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
)

// OrderService turns cart snapshots into immutable orders and owns the
// order lifecycle rules (ownership, cancellation, fulfilment statuses).
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	payments repository.PaymentRepository
	pub      events.Publisher
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	payments repository.PaymentRepository,
	pub events.Publisher,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		payments: payments,
		pub:      pub,
	}
}

// generateOrderNumber builds ORD-<date>-<8 hex chars>. Collisions are not
// checked; the keyspace is large relative to expected daily volume.
func generateOrderNumber(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "ORD-" + now.Format("20060102") + "-" + hex.EncodeToString(buf)
}

// Checkout converts the user's cart into one order with items and a
// pending payment, all-or-nothing. Totals come from live product prices,
// never from client input. The cart itself is left untouched; clearing is
// the caller's follow-up step after success.
func (s *OrderService) Checkout(
	ctx context.Context,
	userID string,
	address models.Address,
	delivery models.DeliveryMethod,
	method models.PaymentMethod,
) (*models.Order, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	deliveryCost, ok := models.DeliveryCost(delivery)
	if !ok {
		return nil, ErrInvalidDelivery
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		total += product.Price * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     line.Quantity,
		})
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:    generateOrderNumber(now),
		UserID:         userID,
		Items:          orderItems,
		Recipient:      address.Recipient,
		Phone:          address.Phone,
		Street:         address.Street,
		City:           address.City,
		Province:       address.Province,
		PostalCode:     address.PostalCode,
		DeliveryMethod: delivery,
		DeliveryCost:   deliveryCost,
		TotalAmount:    total + deliveryCost,
		Status:         models.OrderStatusPending,
		CreatedAt:      now,
		Payment: models.Payment{
			Amount: total + deliveryCost,
			Method: method,
			Status: models.PaymentStatusPending,
		},
	}

	if err := s.orders.CreateWithPayment(ctx, order); err != nil {
		return nil, err
	}

	if err := s.pub.Publish(ctx, events.TopicOrderCreated, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"created_at":   order.CreatedAt,
	}); err != nil {
		log.Printf("failed to publish order.created for %s: %v", order.OrderNumber, err)
	}

	return order, nil
}

// Get returns an order only to its owner.
func (s *OrderService) Get(ctx context.Context, userID string, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

// GetByNumber resolves an order number for its owner.
func (s *OrderService) GetByNumber(ctx context.Context, userID, number string) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

// AdminGet skips the ownership check; admin surfaces only.
func (s *OrderService) AdminGet(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

// cancellable whitelists the source states a user may cancel from: the
// order still pending and its payment not settled.
func cancellable(order *models.Order) bool {
	if order.Status != models.OrderStatusPending {
		return false
	}
	switch order.Payment.Status {
	case models.PaymentStatusPending, models.PaymentStatusFailed, models.PaymentStatusExpired:
		return true
	default:
		return false
	}
}

// Cancel moves an owned order to cancelled, or fails with no mutation.
func (s *OrderService) Cancel(ctx context.Context, userID string, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if !cancellable(order) {
		return nil, ErrNotCancellable
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.payments.UpdateStatus(ctx, order.Payment.ID, models.PaymentStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled
	order.Payment.Status = models.PaymentStatusCancelled
	return order, nil
}

// UpdateStatus is the admin fulfilment path (processing, shipped, ...).
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus) error {
	return s.orders.UpdateStatus(ctx, orderID, status)
}
