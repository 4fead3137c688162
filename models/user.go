package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Addresses    []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address is a saved shipping destination. Orders copy its fields at
// checkout time so later edits do not rewrite order history.
type Address struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string `gorm:"index;not null" json:"user_id"`
	Recipient  string `gorm:"not null" json:"recipient"`
	Phone      string `json:"phone"`
	Street     string `gorm:"not null" json:"street"`
	City       string `gorm:"not null" json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}
