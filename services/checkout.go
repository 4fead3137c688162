package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
)

type CheckoutState string

const (
	CheckoutStarted    CheckoutState = "started"
	CheckoutAddressSet CheckoutState = "address_set"
	CheckoutDeliverySet CheckoutState = "delivery_set"
	CheckoutPaymentSet CheckoutState = "payment_set"
	CheckoutCompleted  CheckoutState = "completed"
)

// CheckoutSession is the explicit wizard context: every step reads and
// writes this one object instead of scattering session keys.
type CheckoutSession struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	State     CheckoutState         `json:"state"`
	Address   models.Address        `json:"address"`
	Delivery  models.DeliveryMethod `json:"delivery"`
	Method    models.PaymentMethod  `json:"method"`
	CreatedAt time.Time             `json:"created_at"`
}

// SessionStore persists checkout sessions under a server-side id with a
// TTL; the redis implementation lives in checkout_store.go.
type SessionStore interface {
	Save(ctx context.Context, session *CheckoutSession) error
	Find(ctx context.Context, id string) (*CheckoutSession, error)
	Delete(ctx context.Context, id string) error
}

// TokenCreator is the slice of the payment gateway the checkout needs.
type TokenCreator interface {
	CreateToken(ctx context.Context, order *models.Order, customer gateway.Customer) (token, redirectURL string, err error)
}

// CheckoutService walks a user through address -> delivery -> payment ->
// complete, enforcing step order.
type CheckoutService struct {
	sessions SessionStore
	ordersvc *OrderService
	cartsvc  *CartService
	tokens   TokenCreator
}

func NewCheckoutService(sessions SessionStore, ordersvc *OrderService, cartsvc *CartService, tokens TokenCreator) *CheckoutService {
	return &CheckoutService{sessions: sessions, ordersvc: ordersvc, cartsvc: cartsvc, tokens: tokens}
}

func (s *CheckoutService) Start(ctx context.Context, userID string) (*CheckoutSession, error) {
	cart, err := s.cartsvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	session := &CheckoutSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     CheckoutStarted,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) load(ctx context.Context, userID, sessionID string) (*CheckoutSession, error) {
	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// A foreign session id is indistinguishable from an expired one.
	if session.UserID != userID {
		return nil, ErrCheckoutNotFound
	}
	return session, nil
}

func (s *CheckoutService) SetAddress(ctx context.Context, userID, sessionID string, address models.Address) (*CheckoutSession, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == CheckoutCompleted {
		return nil, ErrCheckoutStep
	}
	session.Address = address
	if session.State == CheckoutStarted {
		session.State = CheckoutAddressSet
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) SetDelivery(ctx context.Context, userID, sessionID string, delivery models.DeliveryMethod) (*CheckoutSession, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != CheckoutAddressSet && session.State != CheckoutDeliverySet && session.State != CheckoutPaymentSet {
		return nil, ErrCheckoutStep
	}
	if _, ok := models.DeliveryCost(delivery); !ok {
		return nil, ErrInvalidDelivery
	}
	session.Delivery = delivery
	if session.State == CheckoutAddressSet {
		session.State = CheckoutDeliverySet
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) SetPaymentMethod(ctx context.Context, userID, sessionID string, method models.PaymentMethod) (*CheckoutSession, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != CheckoutDeliverySet && session.State != CheckoutPaymentSet {
		return nil, ErrCheckoutStep
	}
	session.Method = method
	session.State = CheckoutPaymentSet
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CheckoutResult is what Complete hands back to the controller: the order
// plus, for gateway methods, the hosted-checkout token.
type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	SnapToken   string        `json:"snap_token,omitempty"`
	RedirectURL string        `json:"redirect_url,omitempty"`
}

// Complete places the order, requests a gateway token when the method
// needs one, and clears the cart. The session is deleted on success.
func (s *CheckoutService) Complete(ctx context.Context, userID, sessionID string, customer gateway.Customer) (*CheckoutResult, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != CheckoutPaymentSet {
		return nil, ErrCheckoutStep
	}

	order, err := s.ordersvc.Checkout(ctx, userID, session.Address, session.Delivery, session.Method)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Order: order}
	if session.Method == models.PaymentMethodMidtrans {
		token, redirect, err := s.tokens.CreateToken(ctx, order, customer)
		if err != nil {
			// Order and payment rows exist; the client can retry token
			// creation through the payment endpoint.
			return result, err
		}
		// Only the snap token is known here; the provider transaction id
		// arrives with the first notification.
		if err := s.ordersvc.payments.SetGatewayRef(ctx, order.Payment.ID, token, ""); err != nil {
			return result, err
		}
		result.SnapToken = token
		result.RedirectURL = redirect
		order.Payment.SnapToken = token
	}

	if err := s.cartsvc.Clear(ctx, userID); err != nil {
		return result, err
	}

	session.State = CheckoutCompleted
	_ = s.sessions.Delete(ctx, session.ID)
	return result, nil
}
