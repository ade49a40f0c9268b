package usecases

import (
	"context"
	"fmt"
	"time"

	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

type SetCustomerParamsCommand struct {
	PassID string

	// UseActivationParams flips the selector back to the activation
	// snapshot; the override fields below are ignored in that case.
	UseActivationParams bool

	StartTime        time.Time
	DurationNumber   int
	DurationUnit     string
	DownloadLimit    int
	LimitPeriod      string
	AllCategories    bool
	CategoryIDs      []uint
	VariationCount   int
	VariationIndices []int
}

// SetCustomerParamsUseCase writes admin-tailored overrides onto one grant,
// or reverts the grant to its activation snapshot.
type SetCustomerParamsUseCase struct {
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewSetCustomerParamsUseCase(lifecycle *pass.Lifecycle, logger logger.Interface) *SetCustomerParamsUseCase {
	return &SetCustomerParamsUseCase{lifecycle: lifecycle, logger: logger}
}

func (uc *SetCustomerParamsUseCase) Execute(ctx context.Context, cmd SetCustomerParamsCommand) (*PassDTO, error) {
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

	if cmd.UseActivationParams {
		if err := uc.lifecycle.UseActivationParams(ctx, p); err != nil {
			return nil, err
		}
	} else {
		params, err := uc.buildParams(cmd)
		if err != nil {
			return nil, err
		}
		if err := uc.lifecycle.SetCustomerParams(ctx, p, params); err != nil {
			return nil, err
		}
	}

	if _, _, err := uc.lifecycle.Refresh(ctx, p); err != nil {
		return nil, err
	}
	return toPassDTO(p), nil
}

func (uc *SetCustomerParamsUseCase) buildParams(cmd SetCustomerParamsCommand) (vo.GrantParams, error) {
	duration, err := vo.NewDuration(cmd.DurationNumber, vo.DurationUnit(cmd.DurationUnit))
	if err != nil {
		return vo.GrantParams{}, err
	}

	var period vo.QuotaPeriod
	if cmd.DownloadLimit > 0 {
		period, err = vo.ParseQuotaPeriod(cmd.LimitPeriod)
		if err != nil {
			return vo.GrantParams{}, err
		}
	}

	categories := vo.Categories(cmd.CategoryIDs...)
	if cmd.AllCategories {
		categories = vo.AllCategories()
	}

	variations := vo.VariationScope{Count: cmd.VariationCount, Indices: cmd.VariationIndices}

	return vo.GrantParams{
		StartTime:   cmd.StartTime.UTC(),
		Duration:    duration,
		Limit:       cmd.DownloadLimit,
		LimitPeriod: period,
		Categories:  categories,
		Variations:  variations,
	}, nil
}
