package catalog

import (
	"context"
	"fmt"
	"time"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// Resolver turns product-level pass configuration into the default grant
// parameter snapshot for one activation. The start time defaults to the
// order's purchase timestamp; renewal and upgrade pass a pinned start to
// preserve window continuity.
type Resolver struct {
	products Repository
}

func NewResolver(products Repository) *Resolver {
	return &Resolver{products: products}
}

// DefaultsFor resolves the grant parameters a purchase of the product
// confers, with the window opening at start (UTC).
func (r *Resolver) DefaultsFor(ctx context.Context, productID uint, start time.Time) (vo.GrantParams, error) {
	cfg, err := r.products.GetPassConfig(ctx, productID)
	if err != nil {
		return vo.GrantParams{}, fmt.Errorf("failed to resolve pass config for product %d: %w", productID, err)
	}
	if !cfg.Enabled {
		return vo.GrantParams{}, fmt.Errorf("product %d is not a pass product", productID)
	}

	return vo.GrantParams{
		StartTime:   start.UTC(),
		Duration:    cfg.Duration,
		Limit:       cfg.Limit,
		LimitPeriod: cfg.LimitPeriod,
		Categories:  cfg.Categories,
		Variations:  cfg.Variations,
	}, nil
}
