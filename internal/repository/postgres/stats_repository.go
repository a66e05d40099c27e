package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type statsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStatsRepository(db *DB) repository.StatsRepository {
	return &statsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *statsRepository) GetStatistics(ctx context.Context, retention time.Duration) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		SavedByStatus: make(map[domain.SavedStatus]int),
		GeneratedAt:   time.Now().UTC(),
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM places").Scan(&stats.TotalPlaces); err != nil {
		r.logger.Error("Failed to count places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	cutoff := time.Now().UTC().Add(-retention)
	staleQuery := "SELECT COUNT(*) FROM place_caches WHERE fetched_at < $1"
	if err := r.db.QueryRowContext(ctx, staleQuery, cutoff).Scan(&stats.StaleCacheRows); err != nil {
		r.logger.Error("Failed to count stale cache rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM saved_places GROUP BY status")
	if err != nil {
		r.logger.Error("Failed to count saved places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.SavedStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			r.logger.Error("Failed to scan status count", zap.Error(err))
			continue
		}
		stats.SavedByStatus[status] = count
		stats.TotalSavedPlaces += count
	}

	return stats, nil
}
