package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/domain/repository"
	"github.com/funmap-service/internal/pkg/errors"
	"github.com/funmap-service/internal/usecase/dto"
)

// SnapshotConfig - параметры цикла обновления
type SnapshotConfig struct {
	Query         string  // готовый текст Overpass QL запроса
	DropThreshold float64 // percent
	GeoJSONTTL    time.Duration
}

// SnapshotUseCase - загрузка данных из Overpass и публикация снимка
type SnapshotUseCase struct {
	overpassRepo repository.OverpassRepository
	venueRepo    repository.VenueRepository
	snapshotRepo repository.SnapshotRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cfg          SnapshotConfig
}

// NewSnapshotUseCase - создание нового SnapshotUseCase
func NewSnapshotUseCase(
	overpassRepo repository.OverpassRepository,
	venueRepo repository.VenueRepository,
	snapshotRepo repository.SnapshotRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cfg SnapshotConfig,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		overpassRepo: overpassRepo,
		venueRepo:    venueRepo,
		snapshotRepo: snapshotRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cfg:          cfg,
	}
}

// Refresh выполняет полный цикл: запрос к Overpass, конвертация в точки,
// проверка на провал количества, замена данных и обновление кеша.
func (uc *SnapshotUseCase) Refresh(ctx context.Context) (*dto.RefreshResponse, error) {
	result, endpoint, err := uc.overpassRepo.Execute(ctx, uc.cfg.Query)
	if err != nil {
		uc.logger.Error("Overpass fetch failed", zap.Error(err))
		return nil, errors.ErrUpstreamFailure.WithDetails(map[string]interface{}{
			"endpoint": endpoint,
			"cause":    err.Error(),
		})
	}

	features, venues, skipped := ConvertElements(result.Elements)
	if skipped > 0 {
		uc.logger.Warn("Skipped elements without point geometry", zap.Int("skipped", skipped))
	}
	if len(features) == 0 {
		uc.logger.Error("No usable point features in Overpass response")
		return nil, errors.ErrEmptySnapshot
	}

	if err := uc.checkFeatureDrop(ctx, len(features)); err != nil {
		return nil, err
	}

	if err := uc.venueRepo.ReplaceAll(ctx, venues); err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		ID:           uuid.New(),
		FeatureCount: len(features),
		SkippedCount: skipped,
		Endpoint:     endpoint,
		OSMTimestamp: result.OSM3S.TimestampOSMBase,
		FetchedAt:    time.Now().UTC(),
	}
	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}

	uc.cacheGeoJSON(ctx, features)

	uc.logger.Info("Snapshot refreshed",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.Int("features", snapshot.FeatureCount),
		zap.Int("skipped", snapshot.SkippedCount),
		zap.String("endpoint", endpoint))

	return &dto.RefreshResponse{
		SnapshotID:   snapshot.ID.String(),
		FeatureCount: snapshot.FeatureCount,
		SkippedCount: snapshot.SkippedCount,
		Endpoint:     snapshot.Endpoint,
		OSMTimestamp: snapshot.OSMTimestamp,
		FetchedAt:    snapshot.FetchedAt,
	}, nil
}

// checkFeatureDrop сравнивает новый объём с последним снимком. Резкое
// падение почти всегда означает урезанный ответ сервера, а не реальное
// исчезновение площадок, поэтому обновление прерывается.
func (uc *SnapshotUseCase) checkFeatureDrop(ctx context.Context, newCount int) error {
	prev, err := uc.snapshotRepo.GetLatest(ctx)
	if err != nil {
		// Журнал недоступен: лучше обновить данные, чем застрять
		uc.logger.Warn("Failed to load previous snapshot, skipping drop check", zap.Error(err))
		return nil
	}
	if prev == nil || prev.FeatureCount == 0 {
		return nil
	}

	dropPct := float64(prev.FeatureCount-newCount) / float64(prev.FeatureCount) * 100
	if dropPct > uc.cfg.DropThreshold {
		uc.logger.Error("Feature drop check failed",
			zap.Int("old_count", prev.FeatureCount),
			zap.Int("new_count", newCount),
			zap.Float64("drop_pct", dropPct),
			zap.Float64("threshold", uc.cfg.DropThreshold))
		return errors.ErrFeatureDrop.WithDetails(map[string]interface{}{
			"old_count": prev.FeatureCount,
			"new_count": newCount,
			"drop_pct":  dropPct,
			"threshold": uc.cfg.DropThreshold,
		})
	}

	return nil
}

func (uc *SnapshotUseCase) cacheGeoJSON(ctx context.Context, features []domain.Feature) {
	data, err := json.Marshal(domain.NewFeatureCollection(features))
	if err != nil {
		uc.logger.Error("Failed to marshal feature collection", zap.Error(err))
		return
	}

	// Кеш вторичен: ошибка записи не должна валить успешный refresh
	if err := uc.cacheRepo.SetGeoJSON(ctx, data, uc.cfg.GeoJSONTTL); err != nil {
		uc.logger.Warn("Failed to cache feature collection", zap.Error(err))
	}
}
