package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/domain/repository"
	"github.com/funmap-service/internal/pkg/errors"
	"github.com/funmap-service/internal/pkg/utils"
	"github.com/funmap-service/internal/usecase/dto"
)

const defaultRadiusLimit = 100

// VenueUseCase - выдача площадок наружу
type VenueUseCase struct {
	venueRepo    repository.VenueRepository
	snapshotRepo repository.SnapshotRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewVenueUseCase - создание нового VenueUseCase
func NewVenueUseCase(
	venueRepo repository.VenueRepository,
	snapshotRepo repository.SnapshotRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *VenueUseCase {
	return &VenueUseCase{
		venueRepo:    venueRepo,
		snapshotRepo: snapshotRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// GetGeoJSON возвращает полную FeatureCollection. Сначала кеш,
// при промахе коллекция собирается заново из базы и кешируется.
func (uc *VenueUseCase) GetGeoJSON(ctx context.Context) ([]byte, error) {
	cached, err := uc.cacheRepo.GetGeoJSON(ctx)
	if err != nil {
		uc.logger.Warn("GeoJSON cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	venues, err := uc.venueRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load venues", zap.Error(err))
		return nil, err
	}
	if len(venues) == 0 {
		return nil, errors.ErrSnapshotNotFound
	}

	features := make([]domain.Feature, 0, len(venues))
	for _, v := range venues {
		features = append(features, FeatureFromVenue(v))
	}

	data, err := json.Marshal(domain.NewFeatureCollection(features))
	if err != nil {
		uc.logger.Error("Failed to marshal feature collection", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	if err := uc.cacheRepo.SetGeoJSON(ctx, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache feature collection", zap.Error(err))
	}

	return data, nil
}

// SearchByRadius - поиск площадок в радиусе от точки
func (uc *VenueUseCase) SearchByRadius(ctx context.Context, req dto.RadiusVenueRequest) (*dto.RadiusVenueResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}
	if req.Limit == 0 {
		req.Limit = defaultRadiusLimit
	}

	// Репозиторий отдаёт грубую выборку по прямоугольнику,
	// точная дистанция и отсечение по радиусу считаются здесь
	candidates, err := uc.venueRepo.GetNearby(ctx, req.Lat, req.Lon, req.RadiusKm, req.Categories)
	if err != nil {
		uc.logger.Error("Failed to search venues by radius", zap.Error(err))
		return nil, err
	}

	type scored struct {
		venue      *domain.Venue
		distanceKm float64
	}

	matched := make([]scored, 0, len(candidates))
	for _, v := range candidates {
		d := utils.HaversineDistance(req.Lat, req.Lon, v.Lat, v.Lon)
		if d <= req.RadiusKm {
			matched = append(matched, scored{venue: v, distanceKm: d})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].distanceKm < matched[j].distanceKm
	})

	if len(matched) > req.Limit {
		matched = matched[:req.Limit]
	}

	results := make([]dto.VenueResult, 0, len(matched))
	for _, m := range matched {
		results = append(results, dto.ConvertVenueResult(m.venue, m.distanceKm))
	}

	return &dto.RadiusVenueResponse{
		Venues: results,
		Total:  len(results),
	}, nil
}

// GetCategories - распределение площадок по категориям и видам
func (uc *VenueUseCase) GetCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	counts, err := uc.venueRepo.CountByCategory(ctx)
	if err != nil {
		uc.logger.Error("Failed to count venues by category", zap.Error(err))
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	return &dto.CategoriesResponse{
		Categories: counts,
		Total:      total,
	}, nil
}

// GetLatestSnapshot - метаданные последней загрузки
func (uc *VenueUseCase) GetLatestSnapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	snapshot, err := uc.snapshotRepo.GetLatest(ctx)
	if err != nil {
		uc.logger.Error("Failed to load latest snapshot", zap.Error(err))
		return nil, err
	}
	if snapshot == nil {
		return nil, errors.ErrSnapshotNotFound
	}

	return &dto.SnapshotResponse{Snapshot: snapshot}, nil
}
