package models

import (
	"errors"
	"strings"
	"time"
)

type PaymentStatus string
type PaymentMethod string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusChallenge PaymentStatus = "challenge"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
	PaymentStatusCancelled PaymentStatus = "cancelled"

	PaymentMethodMidtrans     PaymentMethod = "midtrans"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCOD          PaymentMethod = "cod"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// ParsePaymentMethod is the single place payment method strings are
// accepted; every call site shares this set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(s)) {
	case PaymentMethodMidtrans:
		return PaymentMethodMidtrans, nil
	case PaymentMethodBankTransfer:
		return PaymentMethodBankTransfer, nil
	case PaymentMethodCOD:
		return PaymentMethodCOD, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Payment tracks settlement for exactly one order. Amount always equals
// the order total at creation; partial payments are not modeled.
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"uniqueIndex;not null" json:"order_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Method        PaymentMethod `gorm:"type:VARCHAR(20)" json:"method"`
	TransactionID string        `gorm:"index" json:"transaction_id"`
	SnapToken     string        `json:"snap_token,omitempty"`
	Status        PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
