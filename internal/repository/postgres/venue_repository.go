package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/domain/repository"
	"github.com/funmap-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type venueRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVenueRepository(db *DB) repository.VenueRepository {
	return &venueRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// ReplaceAll заменяет весь набор площадок в одной транзакции:
// либо виден старый снимок целиком, либо новый
func (r *venueRepository) ReplaceAll(ctx context.Context, venues []*domain.Venue) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM venues`); err != nil {
		r.logger.Error("Failed to clear venues", zap.Error(err))
		return errors.ErrDatabaseError
	}

	insert := `
		INSERT INTO venues (osm_type, osm_id, name, category, kind, lat, lon, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	for _, v := range venues {
		tagsJSON, err := json.Marshal(v.Tags)
		if err != nil {
			r.logger.Warn("Failed to marshal venue tags",
				zap.String("osm_type", v.OSMType),
				zap.Int64("osm_id", v.OSMId),
				zap.Error(err))
			tagsJSON = []byte("{}")
		}

		if _, err := tx.ExecContext(ctx, insert,
			v.OSMType, v.OSMId, v.Name, v.Category, v.Kind, v.Lat, v.Lon, tagsJSON,
		); err != nil {
			r.logger.Error("Failed to insert venue",
				zap.String("osm_type", v.OSMType),
				zap.Int64("osm_id", v.OSMId),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit venues", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Info("Venues replaced", zap.Int("count", len(venues)))
	return nil
}

func (r *venueRepository) GetAll(ctx context.Context) ([]*domain.Venue, error) {
	query := `
		SELECT id, osm_type, osm_id, name, category, kind, lat, lon, tags
		FROM venues
		ORDER BY osm_type, osm_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get venues", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanVenues(rows)
}

// GetNearby делает грубую выборку по ограничивающему прямоугольнику.
// Точную дистанцию по хаверсину считает usecase.
func (r *venueRepository) GetNearby(
	ctx context.Context,
	lat, lon, radiusKm float64,
	categories []string,
) ([]*domain.Venue, error) {
	latDelta := radiusKm / 111.0
	lonDelta := radiusKm / (111.0 * math.Max(math.Cos(lat*math.Pi/180.0), 0.01))

	query := `
		SELECT id, osm_type, osm_id, name, category, kind, lat, lon, tags
		FROM venues
		WHERE lat BETWEEN $1 AND $2
		  AND lon BETWEEN $3 AND $4
	`

	args := []interface{}{lat - latDelta, lat + latDelta, lon - lonDelta, lon + lonDelta}
	argIdx := 5

	if len(categories) > 0 {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(categories))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get nearby venues", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanVenues(rows)
}

func (r *venueRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	query := `
		SELECT category, kind, COUNT(*) AS count
		FROM venues
		GROUP BY category, kind
		ORDER BY category, count DESC
	`

	var counts []domain.CategoryCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		r.logger.Error("Failed to count venues by category", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return counts, nil
}

func (r *venueRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM venues`); err != nil {
		r.logger.Error("Failed to count venues", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

func (r *venueRepository) scanVenues(rows *sql.Rows) ([]*domain.Venue, error) {
	var venues []*domain.Venue
	for rows.Next() {
		var v domain.Venue
		var tagsJSON []byte

		err := rows.Scan(
			&v.ID, &v.OSMType, &v.OSMId, &v.Name,
			&v.Category, &v.Kind, &v.Lat, &v.Lon, &tagsJSON,
		)
		if err != nil {
			r.logger.Error("Failed to scan venue", zap.Error(err))
			continue
		}

		if len(tagsJSON) > 0 {
			tags := make(map[string]string)
			if err := json.Unmarshal(tagsJSON, &tags); err != nil {
				r.logger.Warn("Failed to unmarshal venue tags",
					zap.Int64("id", v.ID), zap.Error(err))
			} else {
				v.Tags = tags
			}
		}

		venues = append(venues, &v)
	}

	return venues, nil
}
