package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderPassFlagsModel is the per-order annotation recording which pass keys
// the order has activated and which it has expired. One row per order; the
// key sets are stored as JSON arrays of "product_price" strings.
type OrderPassFlagsModel struct {
	ID        uint           `gorm:"primarykey"`
	OrderID   uint           `gorm:"not null;uniqueIndex"`
	Activated datatypes.JSON `gorm:"not null"`
	Expired   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (OrderPassFlagsModel) TableName() string {
	return "order_pass_flags"
}
