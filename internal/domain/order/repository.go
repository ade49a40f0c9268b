package order

import (
	"context"
	"errors"
)

// ErrOrderNotFound is returned when no order exists for the given id.
var ErrOrderNotFound = errors.New("order not found")

// Repository is the port to the external order system.
type Repository interface {
	// GetByID fetches an order. Returns ErrOrderNotFound when it is gone.
	GetByID(ctx context.Context, id uint) (*Order, error)

	// GetFlags fetches the pass-flag annotation for an order, returning an
	// empty annotation when none was stored yet.
	GetFlags(ctx context.Context, orderID uint) (*PassFlags, error)

	// SaveFlags persists the pass-flag annotation for an order.
	SaveFlags(ctx context.Context, orderID uint, flags *PassFlags) error

	// ListOrderIDsWithActivePasses returns the ids of orders whose
	// annotation still carries at least one active-flagged key. The daily
	// sweep iterates these.
	ListOrderIDsWithActivePasses(ctx context.Context) ([]uint, error)
}
