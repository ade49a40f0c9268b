package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProductPassConfigModel is the per-product pass configuration read by the
// configuration resolver. Products without a row (or with Enabled false)
// are ordinary downloads.
type ProductPassConfigModel struct {
	ID             uint   `gorm:"primarykey"`
	ProductID      uint   `gorm:"not null;uniqueIndex"`
	Enabled        bool   `gorm:"not null;default:false"`
	DurationNumber int    `gorm:"not null;default:0"`
	DurationUnit   string `gorm:"not null;size:10;default:never"`
	DownloadLimit  int    `gorm:"not null;default:0"`
	LimitPeriod    string `gorm:"not null;size:15;default:per_day"`
	AllCategories  bool   `gorm:"not null;default:true"`
	// CategoryIDs and VariationIndices are JSON arrays of uints.
	CategoryIDs      datatypes.JSON
	VariationCount   int `gorm:"not null;default:0"`
	VariationIndices datatypes.JSON
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (ProductPassConfigModel) TableName() string {
	return "product_pass_configs"
}

// ProductCategoryModel links products to their categories.
type ProductCategoryModel struct {
	ID         uint `gorm:"primarykey"`
	ProductID  uint `gorm:"not null;uniqueIndex:idx_product_category,priority:1"`
	CategoryID uint `gorm:"not null;uniqueIndex:idx_product_category,priority:2"`
}

// TableName specifies the table name for GORM
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}
