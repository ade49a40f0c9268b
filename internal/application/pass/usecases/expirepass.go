package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

type ExpirePassCommand struct {
	PassID              string
	OverrideTimeWindow  bool
	OverrideActiveCheck bool
}

// ExpirePassUseCase expires one grant on demand, honoring the state
// machine's preconditions unless overridden.
type ExpirePassUseCase struct {
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewExpirePassUseCase(lifecycle *pass.Lifecycle, logger logger.Interface) *ExpirePassUseCase {
	return &ExpirePassUseCase{lifecycle: lifecycle, logger: logger}
}

func (uc *ExpirePassUseCase) Execute(ctx context.Context, cmd ExpirePassCommand) (*PassDTO, error) {
	id, err := vo.ParsePassID(cmd.PassID)
	if err != nil {
		return nil, err
	}

	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	p, err := uc.lifecycle.Load(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to load pass", "error", err, "pass_id", cmd.PassID)
		return nil, fmt.Errorf("failed to load pass: %w", err)
	}

	if err := uc.lifecycle.MaybeExpire(ctx, p, pass.ExpireOptions{
		OverrideTimeWindow:  cmd.OverrideTimeWindow,
		OverrideActiveCheck: cmd.OverrideActiveCheck,
	}); err != nil {
		return nil, err
	}

	return toPassDTO(p), nil
}
