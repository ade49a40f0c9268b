// Package catalog exposes the product-level pass configuration the commerce
// system owns: which products are pass products and what grant parameters a
// purchase of one confers by default.
package catalog

import (
	"fmt"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// ProductPassConfig is the per-product pass configuration. Products without
// one (or with Enabled false) are ordinary downloads.
type ProductPassConfig struct {
	ProductID   uint
	Enabled     bool
	Duration    vo.Duration
	Limit       int
	LimitPeriod vo.QuotaPeriod
	Categories  vo.CategoryScope
	Variations  vo.VariationScope
}

// Validate performs domain-level validation.
func (c *ProductPassConfig) Validate() error {
	if c.ProductID == 0 {
		return fmt.Errorf("product ID is required")
	}
	if !c.Duration.Unit.IsValid() {
		return fmt.Errorf("invalid duration unit: %s", c.Duration.Unit)
	}
	if c.Limit < 0 {
		return fmt.Errorf("download limit cannot be negative")
	}
	if c.Limit > 0 && !c.LimitPeriod.IsValid() {
		return fmt.Errorf("invalid download limit period: %s", c.LimitPeriod)
	}
	return nil
}
