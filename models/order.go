package models

import "time"

type OrderStatus string
type DeliveryMethod string

const (
	// Order statuses. Payment events only ever drive pending -> paid or
	// pending -> cancelled; the fulfilment statuses are set by admins.
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	DeliveryRegular DeliveryMethod = "regular"
	DeliveryExpress DeliveryMethod = "express"
)

// DeliveryCost returns the flat shipping fee for a delivery method.
func DeliveryCost(m DeliveryMethod) (float64, bool) {
	switch m {
	case DeliveryRegular:
		return 10000, true
	case DeliveryExpress:
		return 15000, true
	default:
		return 0, false
	}
}

type Order struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrderNumber    string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID         string         `gorm:"index;not null" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"-"`
	Items          []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payment        Payment        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment"`
	Recipient      string         `json:"recipient"`
	Phone          string         `json:"phone"`
	Street         string         `json:"street"`
	City           string         `json:"city"`
	Province       string         `json:"province"`
	PostalCode     string         `json:"postal_code"`
	DeliveryMethod DeliveryMethod `gorm:"type:VARCHAR(20)" json:"delivery_method"`
	DeliveryCost   float64        `json:"delivery_cost"`
	TotalAmount    float64        `json:"total_amount"`
	Status         OrderStatus    `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// OrderItem copies product name and price at purchase time so later
// catalog edits leave historical orders untouched.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
}

// Subtotal is the line total at the captured price.
func (i OrderItem) Subtotal() float64 {
	return i.ProductPrice * float64(i.Quantity)
}
