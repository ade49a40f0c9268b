package usecases

import (
	"context"
	"fmt"

	"allaccess/internal/domain/access"
	"allaccess/internal/domain/pass"
	"allaccess/internal/shared/logger"
)

type RecordDownloadCommand struct {
	CustomerID uint
	DownloadID uint
	PriceID    uint
}

// RecordDownloadUseCase is the download-fulfillment path: an access check
// with quota enforcement on, and on success one increment attributed to the
// winning pass.
type RecordDownloadUseCase struct {
	evaluator *access.Evaluator
	lifecycle *pass.Lifecycle
	logger    logger.Interface
}

func NewRecordDownloadUseCase(
	evaluator *access.Evaluator,
	lifecycle *pass.Lifecycle,
	logger logger.Interface,
) *RecordDownloadUseCase {
	return &RecordDownloadUseCase{
		evaluator: evaluator,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (uc *RecordDownloadUseCase) Execute(ctx context.Context, cmd RecordDownloadCommand) (*AccessResultDTO, error) {
	ctx = pass.ContextWithCache(ctx, pass.NewRequestCache())

	opts := access.DefaultOptions()
	opts.EnforceQuota = true

	result, err := uc.evaluator.Check(ctx, cmd.CustomerID, cmd.DownloadID, cmd.PriceID, opts)
	if err != nil {
		uc.logger.Errorw("access check failed", "error", err,
			"customer_id", cmd.CustomerID, "download_id", cmd.DownloadID)
		return nil, fmt.Errorf("access check failed: %w", err)
	}

	if result.Granted {
		if err := uc.lifecycle.RecordDownload(ctx, result.Pass); err != nil {
			uc.logger.Errorw("failed to record download", "error", err,
				"pass_id", result.Pass.ID().String())
			return nil, fmt.Errorf("failed to record download: %w", err)
		}
	}

	return toAccessResultDTO(result), nil
}
