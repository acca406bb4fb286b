package repository

import (
	"context"

	"github.com/funmap-service/internal/domain"
)

// VenueRepository - хранилище площадок
type VenueRepository interface {
	// ReplaceAll атомарно заменяет весь набор площадок новым снимком
	ReplaceAll(ctx context.Context, venues []*domain.Venue) error

	// GetAll возвращает все площадки
	GetAll(ctx context.Context) ([]*domain.Venue, error)

	// GetNearby возвращает площадки внутри ограничивающего прямоугольника
	// радиуса radiusKm вокруг точки, опционально отфильтрованные по категориям.
	// Точная дистанция и сортировка - забота вызывающего слоя.
	GetNearby(ctx context.Context, lat, lon, radiusKm float64, categories []string) ([]*domain.Venue, error)

	// CountByCategory возвращает количество площадок по категориям и видам
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)

	// Count возвращает общее количество площадок
	Count(ctx context.Context) (int, error)
}
