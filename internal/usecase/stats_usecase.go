package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/domain/repository"
)

// StatsUseCase - сводная статистика по загруженным данным
type StatsUseCase struct {
	venueRepo    repository.VenueRepository
	snapshotRepo repository.SnapshotRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewStatsUseCase - создание нового StatsUseCase
func NewStatsUseCase(
	venueRepo repository.VenueRepository,
	snapshotRepo repository.SnapshotRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		venueRepo:    venueRepo,
		snapshotRepo: snapshotRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// GetStatistics собирает статистику, кешируя результат на короткий срок
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err != nil {
		uc.logger.Warn("Stats cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	total, err := uc.venueRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := uc.venueRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int)
	for _, c := range counts {
		byCategory[c.Category] += c.Count
	}

	snapshot, err := uc.snapshotRepo.GetLatest(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load latest snapshot for stats", zap.Error(err))
	}

	stats := &domain.Statistics{
		TotalVenues: total,
		ByCategory:  byCategory,
		Snapshot:    snapshot,
		LastUpdated: time.Now().UTC(),
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}
