package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

type GetPassCommand struct {
	PassID string
}

// GetPassUseCase loads one grant with a freshly derived status and its
// display strings.
type GetPassUseCase struct {
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewGetPassUseCase(lifecycle *pass.Lifecycle, logger logger.Interface) *GetPassUseCase {
	return &GetPassUseCase{lifecycle: lifecycle, logger: logger}
}

func (uc *GetPassUseCase) Execute(ctx context.Context, cmd GetPassCommand) (*PassDTO, error) {
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
	return toPassDTO(p), nil
}
