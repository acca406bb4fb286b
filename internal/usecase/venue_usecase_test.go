package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/pkg/errors"
	"github.com/funmap-service/internal/usecase"
	"github.com/funmap-service/internal/usecase/dto"
)

func newVenueUC(
	venueRepo *MockVenueRepository,
	snapshotRepo *MockSnapshotRepository,
	cacheRepo *MockCacheRepository,
) *usecase.VenueUseCase {
	return usecase.NewVenueUseCase(venueRepo, snapshotRepo, cacheRepo, zap.NewNop(), time.Hour)
}

func TestVenueUseCase_GetGeoJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit returns cached bytes", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		cached := []byte(`{"type":"FeatureCollection","features":[]}`)
		cacheRepo.On("GetGeoJSON", ctx).Return(cached, nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		data, err := uc.GetGeoJSON(ctx)
		require.NoError(t, err)
		assert.Equal(t, cached, data)

		venueRepo.AssertNotCalled(t, "GetAll", mock.Anything)
	})

	t.Run("cache miss builds collection from database", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		cacheRepo.On("GetGeoJSON", ctx).Return(nil, nil)
		venueRepo.On("GetAll", ctx).Return([]*domain.Venue{
			{OSMType: "node", OSMId: 1, Name: "Zoo", Category: "tourism", Kind: "zoo", Lat: 41.38, Lon: 2.17, Tags: map[string]string{"tourism": "zoo"}},
			{OSMType: "way", OSMId: 2, Name: "Bowling", Category: "leisure", Kind: "bowling_alley", Lat: 41.40, Lon: 2.15, Tags: map[string]string{"leisure": "bowling_alley"}},
		}, nil)
		cacheRepo.On("SetGeoJSON", ctx, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		data, err := uc.GetGeoJSON(ctx)
		require.NoError(t, err)

		var fc domain.FeatureCollection
		require.NoError(t, json.Unmarshal(data, &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		assert.Len(t, fc.Features, 2)

		cacheRepo.AssertExpectations(t)
	})

	t.Run("empty database reports missing snapshot", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		cacheRepo.On("GetGeoJSON", ctx).Return(nil, nil)
		venueRepo.On("GetAll", ctx).Return([]*domain.Venue{}, nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		_, err := uc.GetGeoJSON(ctx)
		require.Error(t, err)
		assert.Equal(t, errors.ErrSnapshotNotFound, err)
	})

	t.Run("cache read failure falls through to database", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		cacheRepo.On("GetGeoJSON", ctx).Return(nil, fmt.Errorf("redis down"))
		venueRepo.On("GetAll", ctx).Return([]*domain.Venue{
			{OSMType: "node", OSMId: 1, Category: "sport", Kind: "climbing", Lat: 41.0, Lon: 2.0},
		}, nil)
		cacheRepo.On("SetGeoJSON", ctx, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		data, err := uc.GetGeoJSON(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestVenueUseCase_SearchByRadius(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by exact distance and sorts ascending", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		// Кандидаты из прямоугольной выборки: близкий, подальше и за радиусом
		venueRepo.On("GetNearby", ctx, 41.38, 2.17, 5.0, []string(nil)).Return([]*domain.Venue{
			{OSMType: "node", OSMId: 2, Name: "Far", Category: "leisure", Kind: "ice_rink", Lat: 41.41, Lon: 2.19},
			{OSMType: "node", OSMId: 1, Name: "Near", Category: "tourism", Kind: "zoo", Lat: 41.381, Lon: 2.171},
			{OSMType: "node", OSMId: 3, Name: "Outside", Category: "sport", Kind: "karting", Lat: 41.50, Lon: 2.30},
		}, nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		resp, err := uc.SearchByRadius(ctx, dto.RadiusVenueRequest{
			Lat:      41.38,
			Lon:      2.17,
			RadiusKm: 5.0,
		})
		require.NoError(t, err)

		require.Equal(t, 2, resp.Total)
		assert.Equal(t, "node/1", resp.Venues[0].ID)
		assert.Equal(t, "node/2", resp.Venues[1].ID)
		assert.Less(t, resp.Venues[0].Distance, resp.Venues[1].Distance)
		assert.Greater(t, resp.Venues[0].Distance, 0.0)
	})

	t.Run("limit truncates result", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		candidates := make([]*domain.Venue, 0, 5)
		for i := 0; i < 5; i++ {
			candidates = append(candidates, &domain.Venue{
				OSMType: "node",
				OSMId:   int64(i + 1),
				Lat:     41.38 + float64(i)*0.001,
				Lon:     2.17,
			})
		}
		venueRepo.On("GetNearby", ctx, 41.38, 2.17, 10.0, []string(nil)).Return(candidates, nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		resp, err := uc.SearchByRadius(ctx, dto.RadiusVenueRequest{
			Lat:      41.38,
			Lon:      2.17,
			RadiusKm: 10.0,
			Limit:    2,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("category filter is passed through", func(t *testing.T) {
		venueRepo := &MockVenueRepository{}
		snapshotRepo := &MockSnapshotRepository{}
		cacheRepo := &MockCacheRepository{}

		venueRepo.On("GetNearby", ctx, 41.38, 2.17, 3.0, []string{"sport"}).
			Return([]*domain.Venue{}, nil)

		uc := newVenueUC(venueRepo, snapshotRepo, cacheRepo)

		resp, err := uc.SearchByRadius(ctx, dto.RadiusVenueRequest{
			Lat:        41.38,
			Lon:        2.17,
			RadiusKm:   3.0,
			Categories: []string{"sport"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		venueRepo.AssertExpectations(t)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := newVenueUC(&MockVenueRepository{}, &MockSnapshotRepository{}, &MockCacheRepository{})

		_, err := uc.SearchByRadius(ctx, dto.RadiusVenueRequest{
			Lat:      91.0,
			Lon:      2.17,
			RadiusKm: 5.0,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidCoordinates, err)
	})

	t.Run("invalid radius", func(t *testing.T) {
		uc := newVenueUC(&MockVenueRepository{}, &MockSnapshotRepository{}, &MockCacheRepository{})

		_, err := uc.SearchByRadius(ctx, dto.RadiusVenueRequest{
			Lat:      41.38,
			Lon:      2.17,
			RadiusKm: 500.0,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidRadius, err)
	})
}

func TestVenueUseCase_GetCategories(t *testing.T) {
	ctx := context.Background()

	venueRepo := &MockVenueRepository{}
	venueRepo.On("CountByCategory", ctx).Return([]domain.CategoryCount{
		{Category: "tourism", Kind: "zoo", Count: 2},
		{Category: "leisure", Kind: "water_park", Count: 3},
		{Category: "leisure", Kind: "bowling_alley", Count: 1},
	}, nil)

	uc := newVenueUC(venueRepo, &MockSnapshotRepository{}, &MockCacheRepository{})

	resp, err := uc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Total)
	assert.Len(t, resp.Categories, 3)
}

func TestVenueUseCase_GetLatestSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("returns latest snapshot", func(t *testing.T) {
		snapshotRepo := &MockSnapshotRepository{}
		snapshotRepo.On("GetLatest", ctx).Return(&domain.Snapshot{FeatureCount: 42}, nil)

		uc := newVenueUC(&MockVenueRepository{}, snapshotRepo, &MockCacheRepository{})

		resp, err := uc.GetLatestSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, resp.Snapshot.FeatureCount)
	})

	t.Run("no snapshots yet", func(t *testing.T) {
		snapshotRepo := &MockSnapshotRepository{}
		snapshotRepo.On("GetLatest", ctx).Return(nil, nil)

		uc := newVenueUC(&MockVenueRepository{}, snapshotRepo, &MockCacheRepository{})

		_, err := uc.GetLatestSnapshot(ctx)
		require.Error(t, err)
		assert.Equal(t, errors.ErrSnapshotNotFound, err)
	})
}
