package catalog

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when no product exists for the given id.
var ErrProductNotFound = errors.New("product not found")

// Repository is the port to the external product catalog.
type Repository interface {
	// GetPassConfig fetches the pass configuration of a product. Products
	// that exist but were never configured yield a config with Enabled
	// false, not an error.
	GetPassConfig(ctx context.Context, productID uint) (*ProductPassConfig, error)

	// ProductCategories returns the category ids a product belongs to.
	ProductCategories(ctx context.Context, productID uint) ([]uint, error)

	// VariationCount returns how many price variations a product carries;
	// zero for non-variable products.
	VariationCount(ctx context.Context, productID uint) (int, error)
}
