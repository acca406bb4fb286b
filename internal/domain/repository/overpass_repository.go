package repository

import (
	"context"

	"github.com/funmap-service/internal/domain"
)

// OverpassRepository выполняет готовый Overpass QL запрос на внешнем движке
type OverpassRepository interface {
	// Execute отправляет текст запроса и возвращает разобранный ответ
	// вместе с адресом эндпоинта, который его обслужил
	Execute(ctx context.Context, query string) (*domain.OverpassResult, string, error)
}
