package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type tripRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTripRepository(db *DB) repository.TripRepository {
	return &tripRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *tripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	var trip domain.Trip
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID, &trip.UserID, &trip.Name, &trip.CreatedAt, &trip.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrTripNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get trip", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &trip, nil
}

// FindOrCreateDefault inserts the default trip under the (user_id, name)
// uniqueness constraint; concurrent callers resolve to the single
// existing row.
func (r *tripRepository) FindOrCreateDefault(ctx context.Context, userID uuid.UUID) (*domain.Trip, error) {
	insert := `
		INSERT INTO trips (id, user_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO NOTHING
		RETURNING id, user_id, name, created_at, updated_at
	`

	var trip domain.Trip
	err := r.db.QueryRowContext(ctx, insert, uuid.New(), userID, domain.DefaultTripName).Scan(
		&trip.ID, &trip.UserID, &trip.Name, &trip.CreatedAt, &trip.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		selectTrip := `
			SELECT id, user_id, name, created_at, updated_at
			FROM trips
			WHERE user_id = $1 AND name = $2
		`
		if err := r.db.QueryRowContext(ctx, selectTrip, userID, domain.DefaultTripName).Scan(
			&trip.ID, &trip.UserID, &trip.Name, &trip.CreatedAt, &trip.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to load default trip", zap.String("user_id", userID.String()), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		return &trip, nil
	}
	if err != nil {
		r.logger.Error("Failed to create default trip", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &trip, nil
}
