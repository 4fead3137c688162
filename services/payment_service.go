package services

import (
	"context"
	"log"

	"github.com/ivanfarhani22/management-ecommerce-sub000/events"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
)

// PaymentService applies provider notifications to payment and order rows.
type PaymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	pub      events.Publisher
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, pub events.Publisher) *PaymentService {
	return &PaymentService{payments: payments, orders: orders, pub: pub}
}

type transition struct {
	payment     models.PaymentStatus
	order       models.OrderStatus
	orderChange bool
}

// mapTransition is a pure function of the provider-reported statuses, so
// replaying the same notification always lands on the same result.
func mapTransition(transactionStatus, fraudStatus string) (transition, error) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return transition{payment: models.PaymentStatusChallenge}, nil
		}
		if fraudStatus == "accept" || fraudStatus == "" {
			return transition{payment: models.PaymentStatusSuccess, order: models.OrderStatusPaid, orderChange: true}, nil
		}
		return transition{}, ErrUnknownNotification
	case "settlement":
		return transition{payment: models.PaymentStatusSuccess, order: models.OrderStatusPaid, orderChange: true}, nil
	case "pending":
		return transition{payment: models.PaymentStatusPending}, nil
	case "deny":
		return transition{payment: models.PaymentStatusFailed, order: models.OrderStatusCancelled, orderChange: true}, nil
	case "expire":
		return transition{payment: models.PaymentStatusExpired, order: models.OrderStatusCancelled, orderChange: true}, nil
	case "cancel":
		return transition{payment: models.PaymentStatusCancelled, order: models.OrderStatusCancelled, orderChange: true}, nil
	default:
		return transition{}, ErrUnknownNotification
	}
}

// ApplyNotification resolves the provider order_id to a payment and applies
// the status mapping. Unknown order ids surface as ErrPaymentNotFound so
// the handler can answer non-200 and let the provider retry.
func (s *PaymentService) ApplyNotification(ctx context.Context, n gateway.Notification) (*models.Payment, error) {
	payment, err := s.payments.FindByOrderNumber(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	t, err := mapTransition(n.TransactionStatus, n.FraudStatus)
	if err != nil {
		return nil, err
	}

	if err := s.payments.UpdateStatus(ctx, payment.ID, t.payment); err != nil {
		return nil, err
	}
	if n.TransactionID != "" && payment.TransactionID != n.TransactionID {
		if err := s.payments.SetGatewayRef(ctx, payment.ID, payment.SnapToken, n.TransactionID); err != nil {
			return nil, err
		}
		payment.TransactionID = n.TransactionID
	}
	if t.orderChange {
		if err := s.orders.UpdateStatus(ctx, payment.OrderID, t.order); err != nil {
			return nil, err
		}
	}
	payment.Status = t.payment

	if err := s.pub.Publish(ctx, events.TopicPaymentUpdated, map[string]interface{}{
		"order_id":       payment.OrderID,
		"order_number":   n.OrderID,
		"payment_status": t.payment,
	}); err != nil {
		log.Printf("failed to publish payment.updated for %s: %v", n.OrderID, err)
	}

	return payment, nil
}

// AttachToken records the snap token issued at token-creation time. The
// provider transaction id is not known until the first notification
// arrives, so it stays empty here.
func (s *PaymentService) AttachToken(ctx context.Context, paymentID uint, token string) error {
	return s.payments.SetGatewayRef(ctx, paymentID, token, "")
}
