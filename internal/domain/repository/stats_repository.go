package repository

import (
	"context"
	"time"

	"github.com/saved-places-service/internal/domain"
)

// StatsRepository computes the statistics snapshot from the durable store.
type StatsRepository interface {
	// GetStatistics counts places, saved places by status, and cache
	// rows older than the retention window.
	GetStatistics(ctx context.Context, retention time.Duration) (*domain.Statistics, error)
}
