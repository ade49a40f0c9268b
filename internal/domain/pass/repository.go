package pass

import "context"

// RegistryStore is the port to the customer metadata store holding the
// grant mapping. One document per customer.
type RegistryStore interface {
	// Get fetches a customer's registry, returning an empty registry when
	// none was stored yet.
	Get(ctx context.Context, customerID uint) (*Registry, error)

	// Save persists a customer's registry, replacing the stored document.
	Save(ctx context.Context, customerID uint, registry *Registry) error
}
