package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

type UpgradePassCommand struct {
	FromPassID string
	ToPassID   string
}

// UpgradePassUseCase supersedes an active grant with a higher one,
// preserving the original start date.
type UpgradePassUseCase struct {
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewUpgradePassUseCase(lifecycle *pass.Lifecycle, logger logger.Interface) *UpgradePassUseCase {
	return &UpgradePassUseCase{lifecycle: lifecycle, logger: logger}
}

func (uc *UpgradePassUseCase) Execute(ctx context.Context, cmd UpgradePassCommand) (*PassDTO, error) {
	fromID, err := vo.ParsePassID(cmd.FromPassID)
	if err != nil {
		return nil, err
	}
	toID, err := vo.ParsePassID(cmd.ToPassID)
	if err != nil {
		return nil, err
	}

	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	from, err := uc.lifecycle.Load(ctx, fromID)
	if err != nil {
		uc.logger.Errorw("failed to load pass", "error", err, "pass_id", cmd.FromPassID)
		return nil, fmt.Errorf("failed to load pass: %w", err)
	}

	target, err := uc.lifecycle.Upgrade(ctx, from, toID)
	if err != nil {
		return nil, err
	}
	return toPassDTO(target), nil
}
