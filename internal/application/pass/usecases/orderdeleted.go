package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/pass"
	"allaccess/internal/shared/logger"
)

type OrderDeletedCommand struct {
	OrderID    uint
	CustomerID uint
}

// OrderDeletedUseCase is the order-deletion trigger: the deleted order's
// registry entries are removed and the order is pruned from every renewal
// queue. The order itself is already gone from the store, so the customer
// id must come from the caller.
type OrderDeletedUseCase struct {
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewOrderDeletedUseCase(lifecycle *pass.Lifecycle, logger logger.Interface) *OrderDeletedUseCase {
	return &OrderDeletedUseCase{lifecycle: lifecycle, logger: logger}
}

func (uc *OrderDeletedUseCase) Execute(ctx context.Context, cmd OrderDeletedCommand) (int, error) {
	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	removed, err := uc.lifecycle.HandleOrderDeleted(ctx, cmd.CustomerID, cmd.OrderID)
	if err != nil {
		uc.logger.Errorw("failed to cascade order deletion", "error", err,
			"order_id", cmd.OrderID, "customer_id", cmd.CustomerID)
		return 0, fmt.Errorf("failed to cascade order deletion: %w", err)
	}
	return len(removed), nil
}
