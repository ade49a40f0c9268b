package handlers

import (
	stderrors "errors"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/order"
	"allaccess/internal/domain/pass"
	"allaccess/internal/shared/errors"
)

// mapDomainError translates business sentinels into transport errors with
// the right status codes. Unrecognized errors pass through and surface as
// internal errors.
func mapDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, order.ErrOrderNotFound):
		return errors.NewNotFoundError("order not found")
	case stderrors.Is(err, catalog.ErrProductNotFound):
		return errors.NewNotFoundError("product not found")
	case stderrors.Is(err, pass.ErrOrderNotPaid):
		return errors.NewValidationError("order does not qualify for pass activation")
	case stderrors.Is(err, pass.ErrNotEligible):
		return errors.NewValidationError("order has no matching pass product")
	case stderrors.Is(err, pass.ErrAlreadyActive):
		return errors.NewConflictError("pass is already active")
	case stderrors.Is(err, pass.ErrExpired):
		return errors.NewConflictError("pass has already expired")
	case stderrors.Is(err, pass.ErrNotExpired):
		return errors.NewConflictError("pass validity window has not elapsed")
	case stderrors.Is(err, pass.ErrNotActivated):
		return errors.NewConflictError("pass was never activated")
	case stderrors.Is(err, pass.ErrNotActive):
		return errors.NewConflictError("pass is not active")
	case stderrors.Is(err, pass.ErrNoRenewalOrders):
		return errors.NewConflictError("no queued renewal orders")
	case stderrors.Is(err, pass.ErrAlreadyUpgraded):
		return errors.NewConflictError("pass was already upgraded")
	case stderrors.Is(err, pass.ErrUpgradeTargetHasPriors):
		return errors.NewConflictError("upgrade target already carries prior passes")
	case stderrors.Is(err, pass.ErrStaleRegistry):
		return errors.NewConflictError("pass registry changed concurrently, retry")
	default:
		return err
	}
}
