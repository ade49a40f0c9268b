package pass

import (
	"context"
	"errors"
	"fmt"

	"allaccess/internal/domain/order"
	vo "allaccess/internal/domain/pass/valueobjects"
)

// ActivationResult reports what Activate did. Exactly one of Activated and
// Queued is true on success; Renewal qualifies an activation that took over
// an expired occupant's key.
type ActivationResult struct {
	PassID    vo.PassID
	Activated bool
	Queued    bool
	Renewal   bool
}

// Activate attempts to turn a grant active. Idempotence and the sticky
// expired flag are enforced here: an already-active grant is rejected with
// ErrAlreadyActive, an expired one with ErrExpired. A purchase landing
// behind a still-active occupant of the same key is queued for takeover at
// expiry rather than activated.
func (l *Lifecycle) Activate(ctx context.Context, id vo.PassID) (*ActivationResult, error) {
	key := id.Key()

	o, err := l.orders.GetByID(ctx, id.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, fmt.Errorf("cannot activate pass %s: %w", id.String(), order.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id.OrderID, err)
	}
	if !o.Status().Qualifies() {
		return nil, ErrOrderNotPaid
	}
	eligible, err := l.isPassProduct(ctx, id.ProductID)
	if err != nil {
		return nil, err
	}
	if !eligible || !o.HasItem(key) {
		return nil, ErrNotEligible
	}

	flags, err := l.orders.GetFlags(ctx, id.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pass flags for order %d: %w", id.OrderID, err)
	}
	if flags.IsExpired(key) {
		return nil, ErrExpired
	}

	registry, err := l.freshRegistry(ctx, o.CustomerID())
	if err != nil {
		return nil, err
	}
	occupant := registry.Lookup(key)

	if occupant != nil && occupant.OrderID == id.OrderID && flags.IsActivated(key) {
		return nil, ErrAlreadyActive
	}

	if occupant != nil && occupant.OrderID != id.OrderID {
		occupantPass, err := l.Load(ctx, occupant.ID())
		if err != nil {
			return nil, err
		}
		switch occupantPass.Status() {
		case vo.StatusActive:
			return l.queueRenewal(ctx, o, occupant.ID(), id)
		case vo.StatusExpired:
			return l.renewOver(ctx, o, flags, occupant, id)
		}
		// Occupant is invalid or otherwise defunct: fall through and write
		// a fresh generation over it.
	}

	return l.activateFresh(ctx, o, flags, id)
}

// activateFresh writes a brand-new registry entry for the grant, snapshots
// the product defaults as both parameter sets, and flags the key active on
// the order.
func (l *Lifecycle) activateFresh(ctx context.Context, o *order.Order, flags *order.PassFlags, id vo.PassID) (*ActivationResult, error) {
	defaults, err := l.resolver.DefaultsFor(ctx, id.ProductID, o.PurchasedAt())
	if err != nil {
		return nil, err
	}

	entry := newEntry(id, defaults)
	if _, err := l.mutateRegistry(ctx, o.CustomerID(), func(r *Registry) error {
		r.Put(entry)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := l.flagActive(ctx, id, flags); err != nil {
		return nil, err
	}

	l.publish(NewPassActivatedEvent(id, o.CustomerID(), false, defaults.StartTime))
	l.logger.Infow("pass activated",
		"pass_id", id.String(), "customer_id", o.CustomerID())
	return &ActivationResult{PassID: id, Activated: true}, nil
}

// renewOver hands an expired occupant's entry to this grant. The entry is
// rewritten in place, not replaced, so the remaining renewal queue survives
// the takeover. The new window opens at the occupant's expiration instant
// when the purchase preceded it, otherwise at the purchase time, so
// back-to-back renewals never lose or double-count days.
func (l *Lifecycle) renewOver(ctx context.Context, o *order.Order, flags *order.PassFlags, occupant *RegistryEntry, id vo.PassID) (*ActivationResult, error) {
	start := occupant.Expiration().OrLater(o.PurchasedAt())

	defaults, err := l.resolver.DefaultsFor(ctx, id.ProductID, start)
	if err != nil {
		return nil, err
	}

	if _, err := l.mutateRegistry(ctx, o.CustomerID(), func(r *Registry) error {
		entry := r.Lookup(id.Key())
		if entry == nil || entry.OrderID != occupant.OrderID {
			return fmt.Errorf("occupant of key %s changed during renewal: %w", id.Key().String(), ErrStaleRegistry)
		}
		entry.OrderID = id.OrderID
		entry.ActivationParams = defaults
		entry.CustomerParams = defaults
		entry.UseCustomerParams = false
		entry.DownloadsUsed = 0
		entry.DownloadsUsedLastReset = defaults.StartTime
		entry.PriorPassIDs = nil
		entry.IsPriorOf = ""
		r.MoveToFront(id.Key())
		return nil
	}); err != nil {
		return nil, err
	}

	if err := l.flagActive(ctx, id, flags); err != nil {
		return nil, err
	}

	l.publish(NewPassActivatedEvent(id, o.CustomerID(), true, start))
	l.logger.Infow("pass renewed",
		"pass_id", id.String(), "customer_id", o.CustomerID(),
		"start_time", start)
	return &ActivationResult{PassID: id, Activated: true, Renewal: true}, nil
}

// queueRenewal records the order in the active occupant's renewal queue.
// Success without activation: the grant becomes upcoming.
func (l *Lifecycle) queueRenewal(ctx context.Context, o *order.Order, occupantID vo.PassID, id vo.PassID) (*ActivationResult, error) {
	if _, err := l.mutateRegistry(ctx, o.CustomerID(), func(r *Registry) error {
		entry := r.Lookup(id.Key())
		if entry == nil || entry.OrderID != occupantID.OrderID {
			return fmt.Errorf("occupant of key %s changed during activation: %w", id.Key().String(), ErrStaleRegistry)
		}
		if !entry.QueueRenewalOrder(id.OrderID) {
			return errNoMutation
		}
		return nil
	}); err != nil {
		return nil, err
	}

	l.publish(NewRenewalQueuedEvent(occupantID, id.OrderID, o.CustomerID()))
	l.logger.Infow("pass renewal queued",
		"pass_id", id.String(), "occupant", occupantID.String(),
		"customer_id", o.CustomerID())
	return &ActivationResult{PassID: id, Queued: true}, nil
}

func (l *Lifecycle) flagActive(ctx context.Context, id vo.PassID, flags *order.PassFlags) error {
	if !flags.FlagActivated(id.Key()) {
		return ErrExpired
	}
	if err := l.orders.SaveFlags(ctx, id.OrderID, flags); err != nil {
		return fmt.Errorf("failed to save pass flags for order %d: %w", id.OrderID, err)
	}
	return nil
}

func newEntry(id vo.PassID, defaults vo.GrantParams) *RegistryEntry {
	return &RegistryEntry{
		OrderID:                id.OrderID,
		ProductID:              id.ProductID,
		PriceID:                id.PriceID,
		ActivationParams:       defaults,
		CustomerParams:         defaults,
		DownloadsUsed:          0,
		DownloadsUsedLastReset: defaults.StartTime,
	}
}
