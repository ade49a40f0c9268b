package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/pass"
	"allaccess/internal/shared/logger"
)

type ListCustomerPassesCommand struct {
	CustomerID uint
}

// ListCustomerPassesUseCase returns the customer's grants in storage order,
// most-recently-activated first, with freshly derived statuses.
type ListCustomerPassesUseCase struct {
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewListCustomerPassesUseCase(lifecycle *pass.Lifecycle, logger logger.Interface) *ListCustomerPassesUseCase {
	return &ListCustomerPassesUseCase{lifecycle: lifecycle, logger: logger}
}

func (uc *ListCustomerPassesUseCase) Execute(ctx context.Context, cmd ListCustomerPassesCommand) ([]*PassDTO, error) {
	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	passes, err := uc.lifecycle.CustomerPasses(ctx, cmd.CustomerID)
	if err != nil {
		uc.logger.Errorw("failed to list customer passes", "error", err,
			"customer_id", cmd.CustomerID)
		return nil, fmt.Errorf("failed to list customer passes: %w", err)
	}

	dtos := make([]*PassDTO, 0, len(passes))
	for _, p := range passes {
		dtos = append(dtos, toPassDTO(p))
	}
	return dtos, nil
}
