package pass

import (
	"context"
	"fmt"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// SetCustomerParams writes the customer-specific parameter set on the grant
// and makes it authoritative. The activation snapshot is left untouched, so
// flipping the selector back recovers it exactly.
func (l *Lifecycle) SetCustomerParams(ctx context.Context, p *Pass, params vo.GrantParams) error {
	registry, err := l.mutateRegistry(ctx, p.customerID, func(r *Registry) error {
		e := r.Lookup(p.id.Key())
		if e == nil || e.OrderID != p.id.OrderID {
			return fmt.Errorf("registry changed during override write for %s: %w", p.id.String(), ErrStaleRegistry)
		}
		e.CustomerParams = params
		e.UseCustomerParams = true
		return nil
	})
	if err != nil {
		return err
	}
	p.occupant = registry.Lookup(p.id.Key())

	l.logger.Infow("customer override set",
		"pass_id", p.id.String(), "customer_id", p.customerID)
	return nil
}

// UseActivationParams flips the selector back to the activation-time
// snapshot without clearing the stored overrides.
func (l *Lifecycle) UseActivationParams(ctx context.Context, p *Pass) error {
	registry, err := l.mutateRegistry(ctx, p.customerID, func(r *Registry) error {
		e := r.Lookup(p.id.Key())
		if e == nil || e.OrderID != p.id.OrderID {
			return fmt.Errorf("registry changed during selector flip for %s: %w", p.id.String(), ErrStaleRegistry)
		}
		if !e.UseCustomerParams {
			return errNoMutation
		}
		e.UseCustomerParams = false
		return nil
	})
	if err != nil {
		return err
	}
	p.occupant = registry.Lookup(p.id.Key())
	return nil
}

// HandleOrderDeleted cascades an order deletion into the registry: entries
// originating from the order are removed and the order is pruned from every
// renewal queue. Returns the keys whose occupant was removed.
func (l *Lifecycle) HandleOrderDeleted(ctx context.Context, customerID, orderID uint) ([]vo.PassKey, error) {
	var removed []vo.PassKey
	if _, err := l.mutateRegistry(ctx, customerID, func(r *Registry) error {
		removed = r.RemoveByOrder(orderID)
		pruned := r.PruneRenewalOrder(orderID)
		if len(removed) == 0 && !pruned {
			return errNoMutation
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if len(removed) > 0 {
		l.logger.Infow("pass registry entries removed for deleted order",
			"order_id", orderID, "customer_id", customerID,
			"removed", len(removed))
	}
	return removed, nil
}
