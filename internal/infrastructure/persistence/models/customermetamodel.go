package models

import (
	"time"

	"gorm.io/datatypes"
)

// CustomerMetaModel is the customer metadata store: one arbitrary JSON value
// per customer and string key. The customer pass registry lives here under
// the "all_access_passes" key.
type CustomerMetaModel struct {
	ID         uint           `gorm:"primarykey"`
	CustomerID uint           `gorm:"not null;uniqueIndex:idx_customer_meta_key,priority:1"`
	MetaKey    string         `gorm:"not null;size:100;uniqueIndex:idx_customer_meta_key,priority:2"`
	MetaValue  datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (CustomerMetaModel) TableName() string {
	return "customer_meta"
}
