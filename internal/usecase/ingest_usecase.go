package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/pkg/utils"
	"github.com/saved-places-service/internal/usecase/dto"
)

// IngestUseCase is the ingestion pipeline: it validates an upstream
// place payload, resolves the target trip, and performs the atomic
// place-upsert + ledger-insert write.
type IngestUseCase struct {
	savedRepo repository.SavedPlaceRepository
	tripRepo  repository.TripRepository
	logger    *zap.Logger
}

func NewIngestUseCase(
	savedRepo repository.SavedPlaceRepository,
	tripRepo repository.TripRepository,
	logger *zap.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		savedRepo: savedRepo,
		tripRepo:  tripRepo,
		logger:    logger,
	}
}

// Ingest saves an upstream place for the user. A duplicate (user, place)
// pair returns ErrSavedPlaceExists with the pre-existing entry attached
// in Details under "existing", so the caller can reconcile instead of
// retrying blindly.
func (uc *IngestUseCase) Ingest(ctx context.Context, userID uuid.UUID, req dto.IngestPlaceRequest) (*dto.SavedPlaceResponse, error) {
	payload, err := parsePayload(req.Place)
	if err != nil {
		return nil, err
	}

	status := domain.StatusWishlist
	if req.Status != nil {
		status = domain.SavedStatus(*req.Status)
		if !status.Valid() {
			return nil, errors.ErrInvalidStatus
		}
	}

	trip, err := uc.resolveTrip(ctx, userID, req.TripID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	place := &domain.Place{
		ExternalID: payload.PlaceID,
		Name:       payload.Name,
		Lat:        payload.Geometry.Location.Lat,
		Lng:        payload.Geometry.Location.Lng,
	}
	cache := &domain.PlaceCache{
		ExternalID:       payload.PlaceID,
		FormattedAddress: payload.Address(),
		Types:            payload.Types,
		PlusCode:         payload.PlusCode,
		Viewport:         viewportOf(payload),
		Payload:          payload.Raw,
		FetchedAt:        now,
	}
	saved := &domain.SavedPlace{
		ID:        uuid.New(),
		UserID:    userID,
		PlaceID:   payload.PlaceID,
		TripID:    trip.ID,
		Status:    status,
		UserNotes: req.UserNotes,
	}
	if status == domain.StatusVisited {
		saved.VisitedAt = &now
	}

	stored, err := uc.savedRepo.SaveWithPlace(ctx, place, cache, saved)
	if err == errors.ErrSavedPlaceExists {
		return nil, uc.conflictWithExisting(ctx, userID, payload.PlaceID)
	}
	if err != nil {
		uc.logger.Error("Ingest failed",
			zap.String("user_id", userID.String()),
			zap.String("external_id", payload.PlaceID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Place ingested",
		zap.String("user_id", userID.String()),
		zap.String("external_id", payload.PlaceID),
		zap.String("trip_id", trip.ID.String()),
		zap.String("status", string(status)))

	resp := dto.ConvertSavedPlace(stored)
	return &resp, nil
}

func parsePayload(raw json.RawMessage) (*domain.PlacePayload, error) {
	if len(raw) == 0 {
		return nil, errors.ErrInvalidRequest
	}

	var payload domain.PlacePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "malformed place payload",
		})
	}
	payload.Raw = raw

	if payload.PlaceID == "" {
		return nil, errors.ErrMissingExternalID
	}
	if !payload.HasGeometry() {
		return nil, errors.ErrMissingGeometry
	}
	loc := payload.Geometry.Location
	if !utils.ValidateCoordinates(loc.Lat, loc.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	return &payload, nil
}

// resolveTrip finds the target trip: the user's default one when none
// is supplied, otherwise the named trip after an ownership check. A
// foreign trip answers Forbidden, not NotFound, per the error taxonomy.
func (uc *IngestUseCase) resolveTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) (*domain.Trip, error) {
	if tripID == nil {
		return uc.tripRepo.FindOrCreateDefault(ctx, userID)
	}

	trip, err := uc.tripRepo.GetByID(ctx, *tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, errors.ErrTripForbidden
	}
	return trip, nil
}

func (uc *IngestUseCase) conflictWithExisting(ctx context.Context, userID uuid.UUID, placeID string) error {
	existing, err := uc.savedRepo.GetByUserAndPlace(ctx, userID, placeID)
	if err != nil {
		// The row vanished between insert and lookup; still a conflict,
		// just without the attachment.
		uc.logger.Warn("Conflicting saved place not found after duplicate insert",
			zap.String("user_id", userID.String()),
			zap.String("place_id", placeID))
		return errors.ErrSavedPlaceExists
	}

	return errors.ErrSavedPlaceExists.WithDetails(map[string]interface{}{
		"existing": dto.ConvertSavedPlace(existing),
	})
}

func viewportOf(p *domain.PlacePayload) *domain.Viewport {
	if p.Geometry == nil {
		return nil
	}
	return p.Geometry.Viewport
}
