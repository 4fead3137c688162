package services

import "errors"

// Business-rule errors. Controllers map these to HTTP statuses with
// errors.Is; repository sentinels cover the not-found cases.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrForbidden           = errors.New("order belongs to another user")
	ErrNotCancellable      = errors.New("order can no longer be cancelled")
	ErrInvalidDelivery     = errors.New("invalid delivery method")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrCheckoutStep        = errors.New("checkout step out of order")
	ErrCheckoutNotFound    = errors.New("checkout session not found or expired")
	ErrUnknownNotification = errors.New("unrecognized transaction status")
)
