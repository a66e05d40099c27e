package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type savedPlaceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSavedPlaceRepository(db *DB) repository.SavedPlaceRepository {
	return &savedPlaceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// SaveWithPlace runs the compound ingest write: place upsert, cache seed
// for new places, ledger insert. All three are visible together or not
// at all. Upsert races resolve at the constraint, never in application
// code.
func (r *savedPlaceRepository) SaveWithPlace(
	ctx context.Context,
	place *domain.Place,
	cache *domain.PlaceCache,
	saved *domain.SavedPlace,
) (*domain.SavedPlace, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin ingest transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	insertPlace := `
		INSERT INTO places (external_id, name, lat, lng)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id, external_id, name, lat, lng, created_at, updated_at
	`

	var stored domain.Place
	err = tx.QueryRowContext(ctx, insertPlace,
		place.ExternalID, place.Name, place.Lat, place.Lng,
	).Scan(
		&stored.ID, &stored.ExternalID, &stored.Name,
		&stored.Lat, &stored.Lng, &stored.CreatedAt, &stored.UpdatedAt,
	)

	switch {
	case err == sql.ErrNoRows:
		// Lost the upsert race or the place already existed; the stored
		// row is reused verbatim, no refresh on ingest.
		selectPlace := `
			SELECT id, external_id, name, lat, lng, created_at, updated_at
			FROM places
			WHERE external_id = $1
		`
		if err := tx.QueryRowContext(ctx, selectPlace, place.ExternalID).Scan(
			&stored.ID, &stored.ExternalID, &stored.Name,
			&stored.Lat, &stored.Lng, &stored.CreatedAt, &stored.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to load existing place",
				zap.String("external_id", place.ExternalID), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
	case err != nil:
		r.logger.Error("Failed to insert place",
			zap.String("external_id", place.ExternalID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	default:
		// New place: seed its cache row in the same transaction.
		plusCode, viewport, merr := marshalCacheBlobs(cache)
		if merr != nil {
			r.logger.Error("Failed to marshal cache blobs",
				zap.String("external_id", cache.ExternalID), zap.Error(merr))
			return nil, errors.ErrDatabaseError
		}

		insertCache := `
			INSERT INTO place_caches (external_id, formatted_address, types, plus_code, viewport, payload, fetched_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (external_id) DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, insertCache,
			cache.ExternalID, cache.FormattedAddress, pq.Array(cache.Types),
			plusCode, viewport, []byte(cache.Payload), cache.FetchedAt,
		); err != nil {
			r.logger.Error("Failed to seed place cache",
				zap.String("external_id", cache.ExternalID), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
	}

	insertSaved := `
		INSERT INTO saved_places (id, user_id, place_id, trip_id, status, user_notes, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	result := *saved
	result.PlaceID = stored.ExternalID
	err = tx.QueryRowContext(ctx, insertSaved,
		result.ID, result.UserID, result.PlaceID, result.TripID,
		result.Status, result.UserNotes, result.VisitedAt,
	).Scan(&result.CreatedAt, &result.UpdatedAt)

	if isUniqueViolation(err, "") {
		// Duplicate (user, place) pair: the whole write rolls back.
		return nil, errors.ErrSavedPlaceExists
	}
	if err != nil {
		r.logger.Error("Failed to insert saved place",
			zap.String("user_id", result.UserID.String()),
			zap.String("place_id", result.PlaceID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit ingest transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &result, nil
}

func (r *savedPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedPlace, error) {
	query := `
		SELECT id, user_id, place_id, trip_id, status, user_notes, visited_at, created_at, updated_at
		FROM saved_places
		WHERE id = $1
	`

	saved, err := scanSavedPlace(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrSavedPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get saved place", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return saved, nil
}

func (r *savedPlaceRepository) GetByUserAndPlace(ctx context.Context, userID uuid.UUID, placeID string) (*domain.SavedPlace, error) {
	query := `
		SELECT id, user_id, place_id, trip_id, status, user_notes, visited_at, created_at, updated_at
		FROM saved_places
		WHERE user_id = $1 AND place_id = $2
	`

	saved, err := scanSavedPlace(r.db.QueryRowContext(ctx, query, userID, placeID))
	if err == sql.ErrNoRows {
		return nil, errors.ErrSavedPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get saved place by pair",
			zap.String("user_id", userID.String()),
			zap.String("place_id", placeID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return saved, nil
}

func (r *savedPlaceRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	status *domain.SavedStatus,
	tripID *uuid.UUID,
) ([]*domain.SavedPlaceWithPlace, error) {
	query := `
		SELECT
			s.id, s.user_id, s.place_id, s.trip_id, s.status, s.user_notes, s.visited_at, s.created_at, s.updated_at,
			p.id, p.external_id, p.name, p.lat, p.lng, p.created_at, p.updated_at
		FROM saved_places s
		JOIN places p ON p.external_id = s.place_id
		WHERE s.user_id = $1
	`

	args := []interface{}{userID}
	argIdx := 2

	if status != nil {
		query += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *status)
		argIdx++
	}
	if tripID != nil {
		query += fmt.Sprintf(" AND s.trip_id = $%d", argIdx)
		args = append(args, *tripID)
		argIdx++
	}

	query += " ORDER BY s.created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list saved places", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var result []*domain.SavedPlaceWithPlace
	for rows.Next() {
		var sp domain.SavedPlaceWithPlace
		err := rows.Scan(
			&sp.SavedPlace.ID, &sp.SavedPlace.UserID, &sp.SavedPlace.PlaceID, &sp.SavedPlace.TripID,
			&sp.SavedPlace.Status, &sp.SavedPlace.UserNotes, &sp.SavedPlace.VisitedAt,
			&sp.SavedPlace.CreatedAt, &sp.SavedPlace.UpdatedAt,
			&sp.Place.ID, &sp.Place.ExternalID, &sp.Place.Name,
			&sp.Place.Lat, &sp.Place.Lng, &sp.Place.CreatedAt, &sp.Place.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan saved place", zap.Error(err))
			continue
		}
		result = append(result, &sp)
	}

	return result, nil
}

func (r *savedPlaceRepository) Update(ctx context.Context, id uuid.UUID, update domain.SavedPlaceUpdate) (*domain.SavedPlace, error) {
	query := "UPDATE saved_places SET updated_at = $2"
	args := []interface{}{id, time.Now().UTC()}
	argIdx := 3

	if update.Status != nil {
		// visited_at follows the status transition in the same statement,
		// reading the row's current status: stamped on entering VISITED,
		// cleared on leaving it, kept when the status does not change.
		// Concurrent status writes can never leave VISITED without a
		// timestamp.
		query += fmt.Sprintf(`, status = $%d, visited_at = CASE
				WHEN status = $%d THEN visited_at
				WHEN $%d = 'VISITED' THEN $%d
				ELSE NULL
			END`, argIdx, argIdx, argIdx, argIdx+1)
		args = append(args, *update.Status, time.Now().UTC())
		argIdx += 2
	}
	if update.UserNotes != nil {
		query += fmt.Sprintf(", user_notes = $%d", argIdx)
		args = append(args, *update.UserNotes)
		argIdx++
	}

	query += ` WHERE id = $1
		RETURNING id, user_id, place_id, trip_id, status, user_notes, visited_at, created_at, updated_at`

	saved, err := scanSavedPlace(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, errors.ErrSavedPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update saved place", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return saved, nil
}

func (r *savedPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM saved_places WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete saved place", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrSavedPlaceNotFound
	}

	return nil
}

func scanSavedPlace(row rowScanner) (*domain.SavedPlace, error) {
	var saved domain.SavedPlace
	err := row.Scan(
		&saved.ID, &saved.UserID, &saved.PlaceID, &saved.TripID,
		&saved.Status, &saved.UserNotes, &saved.VisitedAt,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
