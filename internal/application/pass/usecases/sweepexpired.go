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

// SweepResult summarizes one sweep run.
type SweepResult struct {
	OrdersScanned int `json:"orders_scanned"`
	PassesExpired int `json:"passes_expired"`
	Failures      int `json:"failures"`
}

// SweepExpiredUseCase is the daily sweep: it walks every order still
// carrying an active-flagged pass and expires the grants whose window has
// lapsed. Each order is independent; a failure is counted and skipped so
// the rest of the sweep continues, and lazy expiration covers stragglers
// until the next run.
type SweepExpiredUseCase struct {
	orders    order.Repository
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewSweepExpiredUseCase(
	orders order.Repository,
	lifecycle *pass.Lifecycle,
	logger logger.Interface,
) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{
		orders:    orders,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (uc *SweepExpiredUseCase) Execute(ctx context.Context) (*SweepResult, error) {
	orderIDs, err := uc.orders.ListOrderIDsWithActivePasses(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list orders for sweep", "error", err)
		return nil, fmt.Errorf("failed to list orders for sweep: %w", err)
	}

	result := &SweepResult{OrdersScanned: len(orderIDs)}
	for _, orderID := range orderIDs {
		expired, err := uc.sweepOrder(ctx, orderID)
		if err != nil {
			uc.logger.Warnw("sweep failed for order, skipping",
				"order_id", orderID, "error", err)
			result.Failures++
			continue
		}
		result.PassesExpired += expired
	}

	uc.logger.Infow("expiration sweep finished",
		"orders_scanned", result.OrdersScanned,
		"passes_expired", result.PassesExpired,
		"failures", result.Failures)
	return result, nil
}

func (uc *SweepExpiredUseCase) sweepOrder(ctx context.Context, orderID uint) (int, error) {
	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	flags, err := uc.orders.GetFlags(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to load pass flags: %w", err)
	}

	expired := 0
	for _, raw := range flags.ActivatedKeys() {
		key, err := vo.ParsePassKey(raw)
		if err != nil {
			continue
		}
		id, err := vo.NewPassID(orderID, key.ProductID, key.PriceID)
		if err != nil {
			continue
		}

		p, err := uc.lifecycle.Load(ctx, id)
		if err != nil {
			return expired, err
		}
		err = uc.lifecycle.MaybeExpire(ctx, p, pass.ExpireOptions{})
		switch {
		case err == nil:
			expired++
		case errors.Is(err, pass.ErrNotExpired), errors.Is(err, pass.ErrNotActivated):
			// Still inside its window, or already handled elsewhere.
		default:
			return expired, err
		}
	}
	return expired, nil
}
