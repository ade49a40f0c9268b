package models

import (
	"time"
)

// CustomerModel represents the database persistence model for customers.
type CustomerModel struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"not null;size:255;uniqueIndex"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}
