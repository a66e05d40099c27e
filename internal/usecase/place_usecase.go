package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/usecase/dto"
)

// PlaceUseCase exposes the cached-place inventory.
type PlaceUseCase struct {
	placeRepo      repository.PlaceRepository
	cacheRepo      repository.CacheRepository
	cacheRetention time.Duration
	listTTL        time.Duration
	logger         *zap.Logger
}

func NewPlaceUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	cacheRetention time.Duration,
	listTTL time.Duration,
	logger *zap.Logger,
) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo:      placeRepo,
		cacheRepo:      cacheRepo,
		cacheRetention: cacheRetention,
		listTTL:        listTTL,
		logger:         logger,
	}
}

// ListCached returns every place with its cache row, Redis-cached for a
// short TTL. Staleness is re-evaluated on every call, so a row cached as
// fresh is still reported stale once it crosses the retention window.
func (uc *PlaceUseCase) ListCached(ctx context.Context) (*dto.CachedPlaceListResponse, error) {
	places, err := uc.cacheRepo.GetPlaceList(ctx)
	if err != nil || places == nil {
		places, err = uc.placeRepo.ListWithCache(ctx)
		if err != nil {
			return nil, err
		}
		if cacheErr := uc.cacheRepo.SetPlaceList(ctx, places, uc.listTTL); cacheErr != nil {
			uc.logger.Warn("Failed to cache place list", zap.Error(cacheErr))
		}
	}

	now := time.Now().UTC()
	items := make([]dto.CachedPlaceResponse, 0, len(places))
	for _, p := range places {
		items = append(items, dto.CachedPlaceResponse{
			Place: dto.ConvertPlace(&p.Place),
			Cache: *dto.ConvertPlaceCache(&p.Cache, now, uc.cacheRetention),
		})
	}

	return &dto.CachedPlaceListResponse{Items: items, Total: len(items)}, nil
}

// GetCached returns one place with its cache row by external id.
func (uc *PlaceUseCase) GetCached(ctx context.Context, externalID string) (*dto.CachedPlaceResponse, error) {
	place, err := uc.placeRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	cache, err := uc.placeRepo.GetCache(ctx, externalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &dto.CachedPlaceResponse{
		Place: dto.ConvertPlace(place),
		Cache: *dto.ConvertPlaceCache(cache, now, uc.cacheRetention),
	}, nil
}
