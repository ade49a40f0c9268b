package pass

import (
	"context"
	"errors"
	"fmt"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// ExpireOptions force past the preconditions of MaybeExpire. The upgrade
// path overrides the time window; repair tooling may override the active
// check.
type ExpireOptions struct {
	OverrideTimeWindow  bool
	OverrideActiveCheck bool
}

// MaybeExpire writes the sticky expired flag for the grant's key. It is a
// no-op with ErrNotExpired while the window is still open, and with
// ErrNotActivated when the order never activated the key, unless the
// corresponding override is set. After expiring, any queued renewal order
// immediately takes over the key.
func (l *Lifecycle) MaybeExpire(ctx context.Context, p *Pass, opts ExpireOptions) error {
	key := p.id.Key()

	if !opts.OverrideTimeWindow {
		entry := p.Entry()
		if entry == nil || !entry.Expiration().Elapsed(l.now()) {
			return ErrNotExpired
		}
	}

	flags, err := l.orders.GetFlags(ctx, p.id.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load pass flags for order %d: %w", p.id.OrderID, err)
	}
	if !opts.OverrideActiveCheck && !flags.IsActivated(key) {
		return ErrNotActivated
	}

	flags.FlagExpired(key)
	if err := l.orders.SaveFlags(ctx, p.id.OrderID, flags); err != nil {
		return fmt.Errorf("failed to save pass flags for order %d: %w", p.id.OrderID, err)
	}
	p.flags = flags

	newStatus := vo.StatusExpired
	if entry := p.Entry(); entry != nil && entry.IsPriorOf != "" {
		newStatus = vo.StatusUpgraded
	}
	prev := p.status
	p.status = newStatus
	if prev != "" && prev != newStatus {
		l.publish(NewPassStatusChangedEvent(p.id, p.customerID, prev, newStatus))
	}
	l.publish(NewPassExpiredEvent(p.id, p.customerID))
	l.logger.Infow("pass expired",
		"pass_id", p.id.String(), "customer_id", p.customerID,
		"status", newStatus.String())

	// Courtesy takeover: a queued renewal should not wait for the sweep.
	if err := l.MaybeRenew(ctx, p); err != nil &&
		!errors.Is(err, ErrNotExpired) && !errors.Is(err, ErrNoRenewalOrders) {
		l.logger.Warnw("renewal takeover after expiry failed",
			"pass_id", p.id.String(), "error", err)
	}
	return nil
}

// MaybeRenew pops the oldest queued renewal order off the grant and
// activates it against the key. No-op with ErrNotExpired unless the grant
// is expired, and with ErrNoRenewalOrders when the queue is empty.
func (l *Lifecycle) MaybeRenew(ctx context.Context, p *Pass) error {
	if p.status != vo.StatusExpired {
		return ErrNotExpired
	}

	var nextOrderID uint
	if _, err := l.mutateRegistry(ctx, p.customerID, func(r *Registry) error {
		entry := r.Lookup(p.id.Key())
		if entry == nil || entry.OrderID != p.id.OrderID {
			return errNoMutation
		}
		id, ok := entry.PopRenewalOrder()
		if !ok {
			return errNoMutation
		}
		nextOrderID = id
		return nil
	}); err != nil {
		return err
	}
	if nextOrderID == 0 {
		return ErrNoRenewalOrders
	}

	nextID, err := vo.NewPassID(nextOrderID, p.id.ProductID, p.id.PriceID)
	if err != nil {
		return err
	}
	if _, err := l.Activate(ctx, nextID); err != nil {
		return fmt.Errorf("failed to activate queued renewal %s: %w", nextID.String(), err)
	}
	return nil
}
