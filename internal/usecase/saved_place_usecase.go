package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/usecase/dto"
)

// SavedPlaceUseCase manages a user's ledger entries after ingestion:
// listing, status/notes updates and removal.
type SavedPlaceUseCase struct {
	savedRepo      repository.SavedPlaceRepository
	placeRepo      repository.PlaceRepository
	cacheRetention time.Duration
	logger         *zap.Logger
}

func NewSavedPlaceUseCase(
	savedRepo repository.SavedPlaceRepository,
	placeRepo repository.PlaceRepository,
	cacheRetention time.Duration,
	logger *zap.Logger,
) *SavedPlaceUseCase {
	return &SavedPlaceUseCase{
		savedRepo:      savedRepo,
		placeRepo:      placeRepo,
		cacheRetention: cacheRetention,
		logger:         logger,
	}
}

// List returns the user's saved places, optionally filtered by status
// and trip, each joined with its place and staleness-annotated cache row.
func (uc *SavedPlaceUseCase) List(ctx context.Context, userID uuid.UUID, req dto.ListSavedPlacesRequest) (*dto.SavedPlaceListResponse, error) {
	var status *domain.SavedStatus
	if req.Status != nil {
		s := domain.SavedStatus(*req.Status)
		if !s.Valid() {
			return nil, errors.ErrInvalidStatus
		}
		status = &s
	}

	entries, err := uc.savedRepo.ListByUser(ctx, userID, status, req.TripID)
	if err != nil {
		return nil, err
	}

	caches := uc.loadCaches(ctx, entries)

	now := time.Now().UTC()
	items := make([]dto.SavedPlaceListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.SavedPlaceListItem{
			SavedPlace: dto.ConvertSavedPlace(&e.SavedPlace),
			Place:      dto.ConvertPlace(&e.Place),
			Cache:      dto.ConvertPlaceCache(caches[e.Place.ExternalID], now, uc.cacheRetention),
		})
	}

	return &dto.SavedPlaceListResponse{Items: items, Total: len(items)}, nil
}

// Update applies a partial update to a ledger entry. VisitedAt tracks
// status transitions: set on entering VISITED, cleared on leaving it,
// untouched when the status does not change. The repository enforces
// that coupling inside the update statement, so nothing here depends
// on the status read during the ownership check.
func (uc *SavedPlaceUseCase) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateSavedPlaceRequest) (*dto.SavedPlaceResponse, error) {
	if _, err := uc.ownedEntry(ctx, userID, id); err != nil {
		return nil, err
	}

	update := domain.SavedPlaceUpdate{UserNotes: req.UserNotes}
	if req.Status != nil {
		s := domain.SavedStatus(*req.Status)
		if !s.Valid() {
			return nil, errors.ErrInvalidStatus
		}
		update.Status = &s
	}

	updated, err := uc.savedRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Saved place updated",
		zap.String("id", id.String()),
		zap.String("user_id", userID.String()))

	resp := dto.ConvertSavedPlace(updated)
	return &resp, nil
}

// Unsave removes a ledger entry. The place and its cache row stay.
func (uc *SavedPlaceUseCase) Unsave(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := uc.ownedEntry(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.savedRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Saved place removed",
		zap.String("id", id.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// ownedEntry loads a ledger entry and hides other users' entries behind
// NotFound.
func (uc *SavedPlaceUseCase) ownedEntry(ctx context.Context, userID, id uuid.UUID) (*domain.SavedPlace, error) {
	entry, err := uc.savedRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, errors.ErrSavedPlaceNotFound
	}
	return entry, nil
}

func (uc *SavedPlaceUseCase) loadCaches(ctx context.Context, entries []*domain.SavedPlaceWithPlace) map[string]*domain.PlaceCache {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Place.ExternalID)
	}

	caches, err := uc.placeRepo.GetCachesByExternalIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to load place caches for listing", zap.Error(err))
		return nil
	}
	return caches
}
