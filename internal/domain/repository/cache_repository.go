package repository

import (
	"context"
	"time"

	"github.com/saved-places-service/internal/domain"
)

// CacheRepository is the short-lived response cache in Redis. It is a
// convenience layer only; the durable 30-day place cache lives in
// Postgres.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetPlaceList / SetPlaceList cache the list-all-cached-places response.
	GetPlaceList(ctx context.Context) ([]*domain.CachedPlace, error)
	SetPlaceList(ctx context.Context, places []*domain.CachedPlace, ttl time.Duration) error

	// GetStats / SetStats cache the statistics snapshot.
	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
