package repository

import (
	"context"

	"github.com/saved-places-service/internal/domain"
)

// PlaceRepository manages canonical place rows and their cache rows.
type PlaceRepository interface {
	// GetByExternalID returns the place for an upstream external id.
	GetByExternalID(ctx context.Context, externalID string) (*domain.Place, error)

	// GetCache returns the cache row for an external id.
	GetCache(ctx context.Context, externalID string) (*domain.PlaceCache, error)

	// GetCachesByExternalIDs returns cache rows for the given ids,
	// keyed by external id. Missing ids are simply absent.
	GetCachesByExternalIDs(ctx context.Context, externalIDs []string) (map[string]*domain.PlaceCache, error)

	// ListWithCache returns all places joined with their cache rows.
	ListWithCache(ctx context.Context) ([]*domain.CachedPlace, error)

	// RefreshCache overwrites the cache row for an external id and
	// resets its fetched_at timestamp.
	RefreshCache(ctx context.Context, cache *domain.PlaceCache) error
}
