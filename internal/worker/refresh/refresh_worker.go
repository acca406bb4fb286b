package refresh

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/funmap-service/internal/usecase/dto"
	"github.com/funmap-service/internal/worker"
)

// Refresher - часть SnapshotUseCase, нужная воркеру
type Refresher interface {
	Refresh(ctx context.Context) (*dto.RefreshResponse, error)
}

// Config - параметры периодического обновления
type Config struct {
	Interval    time.Duration // период между успешными циклами
	RetryRounds int           // сколько раз повторять неудачный цикл
	RetryDelay  time.Duration // пауза между повторами
}

// RefreshWorker периодически перезагружает данные из Overpass.
// Неудачный цикл повторяется RetryRounds раз с паузой RetryDelay,
// после чего воркер ждёт следующего тика.
type RefreshWorker struct {
	*worker.BaseWorker

	refresher Refresher
	cfg       Config
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(refresher Refresher, cfg Config, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("snapshot-refresh", logger),
		refresher:  refresher,
		cfg:        cfg,
	}
}

// Start запускает цикл обновления. Первый цикл выполняется сразу,
// дальше по интервалу.
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.Logger().Info("Refresh worker started",
		zap.Duration("interval", w.cfg.Interval),
		zap.Int("retry_rounds", w.cfg.RetryRounds),
		zap.Duration("retry_delay", w.cfg.RetryDelay))

	w.runCycle(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Refresh worker context cancelled")
			return ctx.Err()
		case <-w.StopChan():
			w.Logger().Info("Refresh worker stopped")
			return nil
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// runCycle выполняет один цикл обновления с повторами
func (w *RefreshWorker) runCycle(ctx context.Context) {
	rounds := w.cfg.RetryRounds
	if rounds < 1 {
		rounds = 1
	}

	var lastErr error
	for round := 1; round <= rounds; round++ {
		result, err := w.refresher.Refresh(ctx)
		if err == nil {
			w.Logger().Info("Refresh cycle completed",
				zap.String("snapshot_id", result.SnapshotID),
				zap.Int("features", result.FeatureCount),
				zap.Int("round", round))
			return
		}

		lastErr = err
		w.Logger().Warn("Refresh round failed",
			zap.Int("round", round),
			zap.Int("rounds", rounds),
			zap.Error(err))

		if round < rounds {
			if !w.sleep(ctx, w.cfg.RetryDelay) {
				return
			}
		}
	}

	w.Logger().Error("Refresh cycle failed after all rounds",
		zap.Int("rounds", rounds),
		zap.Error(fmt.Errorf("refresh failed: %w", lastErr)))
}

// sleep ждёт delay, прерываясь на остановку воркера
func (w *RefreshWorker) sleep(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-w.StopChan():
		return false
	case <-timer.C:
		return true
	}
}
