package models

import (
	"time"
)

// OrderModel represents the database persistence model for orders.
// This is the anti-corruption layer between domain and database; the pass
// core treats orders as external commerce data.
type OrderModel struct {
	ID          uint      `gorm:"primarykey"`
	CustomerID  uint      `gorm:"not null;index"`
	Status      string    `gorm:"not null;size:30;index"`
	PurchasedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one purchased line item.
type OrderItemModel struct {
	ID        uint `gorm:"primarykey"`
	OrderID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null"`
	PriceID   uint `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}
