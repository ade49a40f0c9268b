package scheduler

import (
	"context"
	"sync"
	"time"

	passUsecases "allaccess/internal/application/pass/usecases"
	sharedConfig "allaccess/internal/shared/config"
	"allaccess/internal/shared/logger"
	"allaccess/internal/shared/storetime"
)

// SweepScheduler runs the daily pass expiration sweep. The sweep is a
// consistency backstop: passes are expired lazily on read, the sweep only
// catches grants nobody has looked at since their window elapsed.
type SweepScheduler struct {
	sweepUC  *passUsecases.SweepExpiredUseCase
	cfg      sharedConfig.SweepConfig
	logger   logger.Interface
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSweepScheduler creates a new SweepScheduler
func NewSweepScheduler(
	sweepUC *passUsecases.SweepExpiredUseCase,
	cfg sharedConfig.SweepConfig,
	logger logger.Interface,
) *SweepScheduler {
	return &SweepScheduler{
		sweepUC:  sweepUC,
		cfg:      cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *SweepScheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Infow("expiration sweep disabled")
		return
	}

	s.logger.Infow("starting expiration sweep scheduler", "hour_store_tz", s.cfg.Hour)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *SweepScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping expiration sweep scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("expiration sweep scheduler stopped")
	})
}

func (s *SweepScheduler) runLoop(ctx context.Context) {
	for {
		next := storetime.NextHourUTC(time.Now(), s.cfg.Hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Infow("expiration sweep scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.runSweep(ctx)
		}
	}
}

func (s *SweepScheduler) runSweep(ctx context.Context) {
	s.logger.Debugw("expiration sweep started")

	startTime := time.Now()

	result, err := s.sweepUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("expiration sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.PassesExpired > 0 || result.Failures > 0 {
		s.logger.Infow("expiration sweep finished",
			"orders_scanned", result.OrdersScanned,
			"passes_expired", result.PassesExpired,
			"failures", result.Failures,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("expiration sweep found nothing to do",
			"orders_scanned", result.OrdersScanned,
			"duration", time.Since(startTime),
		)
	}
}
