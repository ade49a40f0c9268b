package pass

import (
	"context"
	"errors"
	"fmt"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// Upgrade supersedes an active grant with a higher one. The target inherits
// the original start time in both parameter snapshots so the clock never
// restarts, lineage pointers are written on both sides, and the superseded
// grant is force-expired. Returns the upgraded-to pass.
func (l *Lifecycle) Upgrade(ctx context.Context, from *Pass, toID vo.PassID) (*Pass, error) {
	if from.id == toID {
		return nil, fmt.Errorf("cannot upgrade pass %s onto itself", from.id.String())
	}

	status, _, err := l.Refresh(ctx, from)
	if err != nil {
		return nil, err
	}
	if status != vo.StatusActive {
		return nil, ErrNotActive
	}
	fromEntry := from.Entry()
	if fromEntry == nil {
		return nil, ErrNotActive
	}
	if fromEntry.IsPriorOf != "" {
		return nil, ErrAlreadyUpgraded
	}
	startTime := fromEntry.Params().StartTime

	// Check the target's lineage before touching it, so a doomed upgrade
	// does not activate the target as a side effect.
	reg, err := l.registry(ctx, from.customerID)
	if err != nil {
		return nil, err
	}
	if existing := reg.Lookup(toID.Key()); existing != nil &&
		existing.OrderID == toID.OrderID && len(existing.PriorPassIDs) > 0 {
		return nil, ErrUpgradeTargetHasPriors
	}

	// The target must be active, activating it now if needed.
	if _, err := l.Activate(ctx, toID); err != nil && !errors.Is(err, ErrAlreadyActive) {
		return nil, fmt.Errorf("failed to activate upgrade target %s: %w", toID.String(), err)
	}
	target, err := l.Load(ctx, toID)
	if err != nil {
		return nil, err
	}
	if target.Status() != vo.StatusActive {
		return nil, fmt.Errorf("upgrade target %s is %s: %w", toID.String(), target.Status(), ErrNotActive)
	}
	if target.CustomerID() != from.customerID {
		return nil, fmt.Errorf("upgrade target %s belongs to a different customer", toID.String())
	}
	targetEntry := target.Entry()
	if targetEntry == nil {
		return nil, ErrNotActive
	}
	if len(targetEntry.PriorPassIDs) > 0 {
		return nil, ErrUpgradeTargetHasPriors
	}

	priors := append(append([]string(nil), fromEntry.PriorPassIDs...), from.id.String())

	if _, err := l.mutateRegistry(ctx, from.customerID, func(r *Registry) error {
		fe := r.Lookup(from.id.Key())
		te := r.Lookup(toID.Key())
		if fe == nil || fe.OrderID != from.id.OrderID ||
			te == nil || te.OrderID != toID.OrderID {
			return fmt.Errorf("registry changed during upgrade of %s: %w", from.id.String(), ErrStaleRegistry)
		}
		te.ActivationParams = te.ActivationParams.WithStartTime(startTime)
		te.CustomerParams = te.CustomerParams.WithStartTime(startTime)
		te.PriorPassIDs = priors
		fe.IsPriorOf = toID.String()
		return nil
	}); err != nil {
		return nil, err
	}

	l.publish(NewPassUpgradedEvent(from.id, toID, from.customerID))
	l.logger.Infow("pass upgraded",
		"from", from.id.String(), "to", toID.String(),
		"customer_id", from.customerID)

	// Reload so the in-memory instance sees its own IsPriorOf before the
	// forced expiry derives the upgraded status.
	from.occupant = nil
	if reg, err := l.registry(ctx, from.customerID); err == nil {
		from.occupant = reg.Lookup(from.id.Key())
	}
	if err := l.MaybeExpire(ctx, from, ExpireOptions{OverrideTimeWindow: true}); err != nil {
		return nil, fmt.Errorf("failed to expire upgraded pass %s: %w", from.id.String(), err)
	}

	return l.Load(ctx, toID)
}
