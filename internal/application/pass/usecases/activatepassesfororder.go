// Package usecases wires the pass core's operations for the collaborator
// call sites: order lifecycle triggers, access checks, download fulfillment,
// the daily sweep, and customer-facing listings.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"allaccess/internal/domain/order"
	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

type ActivatePassesForOrderCommand struct {
	OrderID uint
}

// ActivationOutcome reports what happened for one line item of the order.
type ActivationOutcome struct {
	PassID    string `json:"pass_id"`
	Activated bool   `json:"activated"`
	Queued    bool   `json:"queued"`
	Renewal   bool   `json:"renewal"`
	Skipped   bool   `json:"skipped"`
	Reason    string `json:"reason,omitempty"`
}

// ActivatePassesForOrderUseCase is the order-status-change trigger: when an
// order reaches a qualifying payment status, every pass-eligible line item
// gets an activation attempt. Per-item business rejections are reported,
// not fatal, so one bad item never blocks the rest of the order.
type ActivatePassesForOrderUseCase struct {
	orders    order.Repository
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewActivatePassesForOrderUseCase(
	orders order.Repository,
	lifecycle *pass.Lifecycle,
	logger logger.Interface,
) *ActivatePassesForOrderUseCase {
	return &ActivatePassesForOrderUseCase{
		orders:    orders,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (uc *ActivatePassesForOrderUseCase) Execute(ctx context.Context, cmd ActivatePassesForOrderCommand) ([]ActivationOutcome, error) {
	o, err := uc.orders.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uc.logger.Errorw("failed to get order", "error", err, "order_id", cmd.OrderID)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !o.Status().Qualifies() {
		return nil, pass.ErrOrderNotPaid
	}

	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	var outcomes []ActivationOutcome
	for _, item := range o.Items() {
		id, err := vo.NewPassID(cmd.OrderID, item.ProductID, item.PriceID)
		if err != nil {
			continue
		}

		result, err := uc.lifecycle.Activate(ctx, id)
		if err != nil {
			if isBusinessRejection(err) {
				outcomes = append(outcomes, ActivationOutcome{
					PassID:  id.String(),
					Skipped: true,
					Reason:  err.Error(),
				})
				continue
			}
			uc.logger.Errorw("failed to activate pass", "error", err, "pass_id", id.String())
			return nil, fmt.Errorf("failed to activate pass %s: %w", id.String(), err)
		}

		outcomes = append(outcomes, ActivationOutcome{
			PassID:    id.String(),
			Activated: result.Activated,
			Queued:    result.Queued,
			Renewal:   result.Renewal,
		})
	}

	uc.logger.Infow("order passes processed",
		"order_id", cmd.OrderID, "outcomes", len(outcomes))
	return outcomes, nil
}

func isBusinessRejection(err error) bool {
	return errors.Is(err, pass.ErrNotEligible) ||
		errors.Is(err, pass.ErrAlreadyActive) ||
		errors.Is(err, pass.ErrExpired)
}
