package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/pkg/utils"
	"github.com/saved-places-service/internal/usecase/dto"
)

// NearbyUseCase answers proximity queries over a user's saved places.
type NearbyUseCase struct {
	savedRepo      repository.SavedPlaceRepository
	placeRepo      repository.PlaceRepository
	streamRepo     repository.StreamRepository
	cacheRetention time.Duration
	logger         *zap.Logger
}

func NewNearbyUseCase(
	savedRepo repository.SavedPlaceRepository,
	placeRepo repository.PlaceRepository,
	streamRepo repository.StreamRepository,
	cacheRetention time.Duration,
	logger *zap.Logger,
) *NearbyUseCase {
	return &NearbyUseCase{
		savedRepo:      savedRepo,
		placeRepo:      placeRepo,
		streamRepo:     streamRepo,
		cacheRetention: cacheRetention,
		logger:         logger,
	}
}

type nearbyCandidate struct {
	entry    *domain.SavedPlaceWithPlace
	distance float64 // meters, unrounded
}

// FindNearby returns the user's saved places within the radius of the
// given position, nearest first. Filtering compares unrounded distances;
// rounding happens only at the response edge. Stale cache rows are
// flagged in the response and queued for refresh, never blocked on.
func (uc *NearbyUseCase) FindNearby(ctx context.Context, userID uuid.UUID, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadiusMeters(req.RadiusMeters) {
		return nil, errors.ErrInvalidRadius
	}

	var status *domain.SavedStatus
	if req.Status != nil {
		s := domain.SavedStatus(*req.Status)
		if !s.Valid() {
			return nil, errors.ErrInvalidStatus
		}
		status = &s
	}

	entries, err := uc.savedRepo.ListByUser(ctx, userID, status, nil)
	if err != nil {
		return nil, err
	}

	candidates := make([]nearbyCandidate, 0, len(entries))
	for _, e := range entries {
		d := utils.HaversineDistanceMeters(req.Lat, req.Lng, e.Place.Lat, e.Place.Lng)
		if d <= req.RadiusMeters {
			candidates = append(candidates, nearbyCandidate{entry: e, distance: d})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].entry.Place.ExternalID < candidates[j].entry.Place.ExternalID
	})

	caches := uc.loadCaches(ctx, candidates)

	now := time.Now().UTC()
	results := make([]dto.NearbyResult, 0, len(candidates))
	for _, c := range candidates {
		cache := caches[c.entry.Place.ExternalID]
		if cache != nil && cache.IsStale(now, uc.cacheRetention) {
			uc.requestRefresh(ctx, cache)
		}
		results = append(results, dto.NearbyResult{
			SavedPlace:     dto.ConvertSavedPlace(&c.entry.SavedPlace),
			Place:          dto.ConvertPlace(&c.entry.Place),
			Cache:          dto.ConvertPlaceCache(cache, now, uc.cacheRetention),
			DistanceKm:     utils.RoundKm(c.distance / 1000),
			DistanceMeters: utils.RoundMeters(c.distance),
		})
	}

	return &dto.NearbyResponse{Results: results, Total: len(results)}, nil
}

// loadCaches fetches enrichment rows for the hits in one round trip. A
// failure degrades the response to bare places rather than failing it.
func (uc *NearbyUseCase) loadCaches(ctx context.Context, candidates []nearbyCandidate) map[string]*domain.PlaceCache {
	if len(candidates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.entry.Place.ExternalID)
	}

	caches, err := uc.placeRepo.GetCachesByExternalIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to load place caches for nearby results", zap.Error(err))
		return nil
	}
	return caches
}

// requestRefresh queues a re-fetch of a stale cache row. Best effort: a
// publish failure is logged and the query proceeds.
func (uc *NearbyUseCase) requestRefresh(ctx context.Context, cache *domain.PlaceCache) {
	event := domain.PlaceRefreshEvent{
		ExternalID:  cache.ExternalID,
		FetchedAt:   cache.FetchedAt,
		RequestedAt: time.Now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPlaceRefresh, event); err != nil {
		uc.logger.Warn("Failed to publish place refresh event",
			zap.String("external_id", cache.ExternalID),
			zap.Error(err))
		return
	}
	uc.logger.Debug("Place refresh requested",
		zap.String("external_id", cache.ExternalID),
		zap.Time("fetched_at", cache.FetchedAt))
}
