package repository

import (
	"context"

	"github.com/funmap-service/internal/domain"
)

// SnapshotRepository - журнал загрузок данных
type SnapshotRepository interface {
	// Create сохраняет метаданные успешной загрузки
	Create(ctx context.Context, snapshot *domain.Snapshot) error

	// GetLatest возвращает метаданные последней загрузки,
	// nil без ошибки если загрузок ещё не было
	GetLatest(ctx context.Context) (*domain.Snapshot, error)
}
