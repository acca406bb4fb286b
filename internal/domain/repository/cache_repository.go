package repository

import (
	"context"
	"time"

	"github.com/funmap-service/internal/domain"
)

// CacheRepository - кеш готовых ответов
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetGeoJSON возвращает закешированную FeatureCollection, nil при промахе
	GetGeoJSON(ctx context.Context) ([]byte, error)
	SetGeoJSON(ctx context.Context, data []byte, ttl time.Duration) error

	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
