package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/access"
	"allaccess/internal/domain/pass"
	"allaccess/internal/shared/logger"
)

type CheckAccessCommand struct {
	CustomerID        uint
	DownloadID        uint
	PriceID           uint
	SkipLoginCheck    bool
	EnforceQuota      bool
	RestrictToProduct uint
}

// AccessResultDTO is the evaluator's outcome for collaborators.
type AccessResultDTO struct {
	Granted        bool     `json:"granted"`
	Pass           *PassDTO `json:"pass,omitempty"`
	FailureKind    string   `json:"failure_kind,omitempty"`
	FailureMessage string   `json:"failure_message,omitempty"`
	NearestMiss    *PassDTO `json:"nearest_miss,omitempty"`
}

// CheckAccessUseCase answers "may this customer download this file" without
// recording anything.
type CheckAccessUseCase struct {
	evaluator *access.Evaluator
	logger    logger.Interface
}

func NewCheckAccessUseCase(evaluator *access.Evaluator, logger logger.Interface) *CheckAccessUseCase {
	return &CheckAccessUseCase{evaluator: evaluator, logger: logger}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, cmd CheckAccessCommand) (*AccessResultDTO, error) {
	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	opts := access.DefaultOptions()
	opts.RequireLogin = !cmd.SkipLoginCheck
	opts.EnforceQuota = cmd.EnforceQuota
	opts.RestrictToProduct = cmd.RestrictToProduct

	result, err := uc.evaluator.Check(ctx, cmd.CustomerID, cmd.DownloadID, cmd.PriceID, opts)
	if err != nil {
		uc.logger.Errorw("access check failed", "error", err,
			"customer_id", cmd.CustomerID, "download_id", cmd.DownloadID)
		return nil, fmt.Errorf("access check failed: %w", err)
	}

	return toAccessResultDTO(result), nil
}

func toAccessResultDTO(result *access.Result) *AccessResultDTO {
	dto := &AccessResultDTO{Granted: result.Granted}
	if result.Granted {
		dto.Pass = toPassDTO(result.Pass)
		return dto
	}
	dto.FailureKind = string(result.Failure.Kind)
	dto.FailureMessage = result.Failure.Message
	if result.Failure.Pass != nil {
		dto.NearestMiss = toPassDTO(result.Failure.Pass)
	}
	return dto
}
