package pass

import (
	"context"
	"fmt"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// maybeResetDownloadsUsed rolls the quota counter over when more whole
// periods have elapsed since the grant's start than were accounted for at
// the last reset. The reset timestamp lands exactly on the boundary of the
// most recently completed period, never on "now", so drift cannot
// accumulate. Runs only for grants that just computed active.
func (l *Lifecycle) maybeResetDownloadsUsed(ctx context.Context, p *Pass) error {
	entry := p.Entry()
	if entry == nil {
		return nil
	}
	params := entry.Params()
	period := params.LimitPeriod

	elapsed := period.PeriodsElapsed(params.StartTime, l.now())
	accounted := period.PeriodsElapsed(params.StartTime, entry.DownloadsUsedLastReset)
	if elapsed <= accounted {
		return nil
	}
	boundary := period.Boundary(params.StartTime, elapsed)

	registry, err := l.mutateRegistry(ctx, p.customerID, func(r *Registry) error {
		e := r.Lookup(p.id.Key())
		if e == nil || e.OrderID != p.id.OrderID {
			return errNoMutation
		}
		e.DownloadsUsed = 0
		e.DownloadsUsedLastReset = boundary
		return nil
	})
	if err != nil {
		return err
	}
	p.occupant = registry.Lookup(p.id.Key())

	l.publish(NewQuotaResetEvent(p.id, p.customerID, boundary))
	l.logger.Debugw("download quota reset",
		"pass_id", p.id.String(), "reset_to", boundary)
	return nil
}

// RecordDownload attributes one fulfilled download to the grant and
// increments its counter. The grant must be active. The increment can be
// vetoed by the download filter; the download itself still succeeds.
func (l *Lifecycle) RecordDownload(ctx context.Context, p *Pass) error {
	status, _, err := l.Refresh(ctx, p)
	if err != nil {
		return err
	}
	if status != vo.StatusActive {
		return ErrNotActive
	}

	if l.downloadFilter != nil && !l.downloadFilter(p) {
		l.logger.Debugw("download increment skipped by filter",
			"pass_id", p.id.String())
		return nil
	}

	var used int
	registry, err := l.mutateRegistry(ctx, p.customerID, func(r *Registry) error {
		e := r.Lookup(p.id.Key())
		if e == nil || e.OrderID != p.id.OrderID {
			return fmt.Errorf("registry changed during download record for %s: %w", p.id.String(), ErrStaleRegistry)
		}
		e.DownloadsUsed++
		used = e.DownloadsUsed
		return nil
	})
	if err != nil {
		return err
	}
	p.occupant = registry.Lookup(p.id.Key())

	l.publish(NewDownloadRecordedEvent(p.id, p.customerID, used))
	return nil
}
