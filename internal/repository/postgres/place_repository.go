package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *placeRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Place, error) {
	query := `
		SELECT id, external_id, name, lat, lng, created_at, updated_at
		FROM places
		WHERE external_id = $1
	`

	var place domain.Place
	err := r.db.QueryRowContext(ctx, query, externalID).Scan(
		&place.ID, &place.ExternalID, &place.Name,
		&place.Lat, &place.Lng, &place.CreatedAt, &place.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place by external id", zap.String("external_id", externalID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &place, nil
}

func (r *placeRepository) GetCache(ctx context.Context, externalID string) (*domain.PlaceCache, error) {
	query := `
		SELECT external_id, formatted_address, types, plus_code, viewport, payload, fetched_at
		FROM place_caches
		WHERE external_id = $1
	`

	cache, err := scanPlaceCache(r.db.QueryRowContext(ctx, query, externalID))
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place cache", zap.String("external_id", externalID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return cache, nil
}

func (r *placeRepository) GetCachesByExternalIDs(ctx context.Context, externalIDs []string) (map[string]*domain.PlaceCache, error) {
	if len(externalIDs) == 0 {
		return map[string]*domain.PlaceCache{}, nil
	}

	query := `
		SELECT external_id, formatted_address, types, plus_code, viewport, payload, fetched_at
		FROM place_caches
		WHERE external_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(externalIDs))
	if err != nil {
		r.logger.Error("Failed to get place caches", zap.Int("count", len(externalIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	caches := make(map[string]*domain.PlaceCache, len(externalIDs))
	for rows.Next() {
		cache, err := scanPlaceCache(rows)
		if err != nil {
			r.logger.Error("Failed to scan place cache", zap.Error(err))
			continue
		}
		caches[cache.ExternalID] = cache
	}

	return caches, nil
}

func (r *placeRepository) ListWithCache(ctx context.Context) ([]*domain.CachedPlace, error) {
	query := `
		SELECT
			p.id, p.external_id, p.name, p.lat, p.lng, p.created_at, p.updated_at,
			c.external_id, c.formatted_address, c.types, c.plus_code, c.viewport, c.payload, c.fetched_at
		FROM places p
		JOIN place_caches c ON c.external_id = p.external_id
		ORDER BY p.created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list cached places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var result []*domain.CachedPlace
	for rows.Next() {
		var cp domain.CachedPlace
		var types pq.StringArray
		var plusCode, viewport, payload []byte

		err := rows.Scan(
			&cp.Place.ID, &cp.Place.ExternalID, &cp.Place.Name,
			&cp.Place.Lat, &cp.Place.Lng, &cp.Place.CreatedAt, &cp.Place.UpdatedAt,
			&cp.Cache.ExternalID, &cp.Cache.FormattedAddress, &types,
			&plusCode, &viewport, &payload, &cp.Cache.FetchedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan cached place", zap.Error(err))
			continue
		}

		cp.Cache.Types = types
		if err := unmarshalCacheBlobs(&cp.Cache, plusCode, viewport, payload); err != nil {
			r.logger.Warn("Failed to unmarshal cache blobs",
				zap.String("external_id", cp.Cache.ExternalID), zap.Error(err))
		}

		result = append(result, &cp)
	}

	return result, nil
}

func (r *placeRepository) RefreshCache(ctx context.Context, cache *domain.PlaceCache) error {
	query := `
		UPDATE place_caches
		SET formatted_address = $2, types = $3, plus_code = $4, viewport = $5, payload = $6, fetched_at = $7
		WHERE external_id = $1
	`

	plusCode, viewport, err := marshalCacheBlobs(cache)
	if err != nil {
		r.logger.Error("Failed to marshal cache blobs", zap.String("external_id", cache.ExternalID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	fetchedAt := cache.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, query,
		cache.ExternalID, cache.FormattedAddress, pq.Array(cache.Types),
		plusCode, viewport, []byte(cache.Payload), fetchedAt,
	)
	if err != nil {
		r.logger.Error("Failed to refresh place cache", zap.String("external_id", cache.ExternalID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrPlaceNotFound
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlaceCache(row rowScanner) (*domain.PlaceCache, error) {
	var cache domain.PlaceCache
	var types pq.StringArray
	var plusCode, viewport, payload []byte

	err := row.Scan(
		&cache.ExternalID, &cache.FormattedAddress, &types,
		&plusCode, &viewport, &payload, &cache.FetchedAt,
	)
	if err != nil {
		return nil, err
	}

	cache.Types = types
	if err := unmarshalCacheBlobs(&cache, plusCode, viewport, payload); err != nil {
		return nil, err
	}

	return &cache, nil
}

func unmarshalCacheBlobs(cache *domain.PlaceCache, plusCode, viewport, payload []byte) error {
	if len(plusCode) > 0 {
		var pc domain.PlusCode
		if err := json.Unmarshal(plusCode, &pc); err != nil {
			return err
		}
		cache.PlusCode = &pc
	}
	if len(viewport) > 0 {
		var vp domain.Viewport
		if err := json.Unmarshal(viewport, &vp); err != nil {
			return err
		}
		cache.Viewport = &vp
	}
	if len(payload) > 0 {
		cache.Payload = json.RawMessage(payload)
	}
	return nil
}

func marshalCacheBlobs(cache *domain.PlaceCache) (plusCode, viewport []byte, err error) {
	if cache.PlusCode != nil {
		plusCode, err = json.Marshal(cache.PlusCode)
		if err != nil {
			return nil, nil, err
		}
	}
	if cache.Viewport != nil {
		viewport, err = json.Marshal(cache.Viewport)
		if err != nil {
			return nil, nil, err
		}
	}
	return plusCode, viewport, nil
}
