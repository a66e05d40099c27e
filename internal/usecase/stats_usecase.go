package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
)

// StatsUseCase serves the operator statistics snapshot, Redis-cached to
// keep the counting queries off the hot path.
type StatsUseCase struct {
	statsRepo      repository.StatsRepository
	cacheRepo      repository.CacheRepository
	cacheRetention time.Duration
	statsTTL       time.Duration
	logger         *zap.Logger
}

func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cacheRetention time.Duration,
	statsTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo:      statsRepo,
		cacheRepo:      cacheRepo,
		cacheRetention: cacheRetention,
		statsTTL:       statsTTL,
		logger:         logger,
	}
}

// GetStatistics returns the current snapshot, at most statsTTL old.
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	if cached, err := uc.cacheRepo.GetStats(ctx); err == nil && cached != nil {
		return cached, nil
	}

	stats, err := uc.statsRepo.GetStatistics(ctx, uc.cacheRetention)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.statsTTL); err != nil {
		uc.logger.Warn("Failed to cache statistics", zap.Error(err))
	}

	return stats, nil
}
