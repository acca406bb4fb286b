package postgres

import (
	"context"
	"database/sql"

	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/domain/repository"
	"github.com/funmap-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type snapshotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSnapshotRepository(db *DB) repository.SnapshotRepository {
	return &snapshotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *domain.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, feature_count, skipped_count, endpoint, osm_timestamp, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.FeatureCount,
		snapshot.SkippedCount,
		snapshot.Endpoint,
		snapshot.OSMTimestamp,
		snapshot.FetchedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create snapshot",
			zap.String("id", snapshot.ID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *snapshotRepository) GetLatest(ctx context.Context) (*domain.Snapshot, error) {
	query := `
		SELECT id, feature_count, skipped_count, endpoint, osm_timestamp, fetched_at
		FROM snapshots
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var snapshot domain.Snapshot
	err := r.db.QueryRowContext(ctx, query).Scan(
		&snapshot.ID,
		&snapshot.FeatureCount,
		&snapshot.SkippedCount,
		&snapshot.Endpoint,
		&snapshot.OSMTimestamp,
		&snapshot.FetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get latest snapshot", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &snapshot, nil
}
