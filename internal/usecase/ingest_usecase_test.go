package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/domain"
	apperrors "github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/usecase"
	"github.com/saved-places-service/internal/usecase/dto"
)

func placePayloadJSON(placeID string) json.RawMessage {
	return json.RawMessage(`{
		"place_id": "` + placeID + `",
		"name": "Sagrada Familia",
		"geometry": {"location": {"lat": 41.4036, "lng": 2.1744}},
		"formatted_address": "C/ de Mallorca, 401, Barcelona",
		"types": ["church", "tourist_attraction"]
	}`)
}

func TestIngestUseCase_Ingest(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("saves a new place into the default trip", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		trip := &domain.Trip{ID: uuid.New(), UserID: userID, Name: domain.DefaultTripName}
		mockTrip.On("FindOrCreateDefault", ctx, userID).Return(trip, nil)

		mockSaved.On("SaveWithPlace", ctx,
			mock.MatchedBy(func(p *domain.Place) bool {
				return p.ExternalID == "ChIJk_s92NyipBIRUMnDG8Kq2Js" &&
					p.Name == "Sagrada Familia" &&
					p.Lat == 41.4036 && p.Lng == 2.1744
			}),
			mock.MatchedBy(func(c *domain.PlaceCache) bool {
				return c.ExternalID == "ChIJk_s92NyipBIRUMnDG8Kq2Js" &&
					c.FormattedAddress != nil &&
					len(c.Types) == 2 &&
					!c.FetchedAt.IsZero() &&
					len(c.Payload) > 0
			}),
			mock.MatchedBy(func(s *domain.SavedPlace) bool {
				return s.UserID == userID &&
					s.PlaceID == "ChIJk_s92NyipBIRUMnDG8Kq2Js" &&
					s.TripID == trip.ID &&
					s.Status == domain.StatusWishlist &&
					s.VisitedAt == nil
			}),
		).Return(&domain.SavedPlace{
			ID:      uuid.New(),
			UserID:  userID,
			PlaceID: "ChIJk_s92NyipBIRUMnDG8Kq2Js",
			TripID:  trip.ID,
			Status:  domain.StatusWishlist,
		}, nil)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			Place: placePayloadJSON("ChIJk_s92NyipBIRUMnDG8Kq2Js"),
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, domain.StatusWishlist, resp.Status)
		assert.Equal(t, trip.ID, resp.TripID)
		mockTrip.AssertExpectations(t)
		mockSaved.AssertExpectations(t)
	})

	t.Run("stamps visited_at when ingested as VISITED", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		trip := &domain.Trip{ID: uuid.New(), UserID: userID}
		mockTrip.On("FindOrCreateDefault", ctx, userID).Return(trip, nil)

		mockSaved.On("SaveWithPlace", ctx, mock.Anything, mock.Anything,
			mock.MatchedBy(func(s *domain.SavedPlace) bool {
				return s.Status == domain.StatusVisited && s.VisitedAt != nil
			}),
		).Return(&domain.SavedPlace{ID: uuid.New(), Status: domain.StatusVisited}, nil)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			Status: ptrString("VISITED"),
			Place:  placePayloadJSON("place-visited"),
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		mockSaved.AssertExpectations(t)
	})

	t.Run("uses an explicit trip after an ownership check", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		tripID := uuid.New()
		mockTrip.On("GetByID", ctx, tripID).Return(&domain.Trip{ID: tripID, UserID: userID}, nil)
		mockSaved.On("SaveWithPlace", ctx, mock.Anything, mock.Anything,
			mock.MatchedBy(func(s *domain.SavedPlace) bool { return s.TripID == tripID }),
		).Return(&domain.SavedPlace{ID: uuid.New(), TripID: tripID}, nil)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			TripID: &tripID,
			Place:  placePayloadJSON("place-explicit-trip"),
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		mockTrip.AssertNotCalled(t, "FindOrCreateDefault", mock.Anything, mock.Anything)
	})

	t.Run("rejects a trip owned by another user", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		tripID := uuid.New()
		mockTrip.On("GetByID", ctx, tripID).Return(&domain.Trip{ID: tripID, UserID: uuid.New()}, nil)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			TripID: &tripID,
			Place:  placePayloadJSON("place-foreign-trip"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrTripForbidden)
		mockSaved.AssertNotCalled(t, "SaveWithPlace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("propagates trip not found", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		tripID := uuid.New()
		mockTrip.On("GetByID", ctx, tripID).Return(nil, apperrors.ErrTripNotFound)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			TripID: &tripID,
			Place:  placePayloadJSON("place-no-trip"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrTripNotFound)
	})

	t.Run("rejects a payload without an external id", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		payload := json.RawMessage(`{"name": "Nameless", "geometry": {"location": {"lat": 1, "lng": 2}}}`)
		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{Place: payload})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrMissingExternalID)
	})

	t.Run("rejects a payload without geometry", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		payload := json.RawMessage(`{"place_id": "no-geometry", "name": "Somewhere"}`)
		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{Place: payload})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrMissingGeometry)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		payload := json.RawMessage(`{"place_id": "bad-coords", "geometry": {"location": {"lat": 91, "lng": 0}}}`)
		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{Place: payload})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("rejects malformed payload JSON", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			Place: json.RawMessage(`{"place_id": `),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	t.Run("returns conflict with the existing entry on duplicate save", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		trip := &domain.Trip{ID: uuid.New(), UserID: userID}
		mockTrip.On("FindOrCreateDefault", ctx, userID).Return(trip, nil)
		mockSaved.On("SaveWithPlace", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrSavedPlaceExists)

		existing := &domain.SavedPlace{
			ID:        uuid.New(),
			UserID:    userID,
			PlaceID:   "place-dup",
			TripID:    trip.ID,
			Status:    domain.StatusVisited,
			VisitedAt: ptrTime(time.Now().Add(-24 * time.Hour)),
		}
		mockSaved.On("GetByUserAndPlace", ctx, userID, "place-dup").Return(existing, nil)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			Place: placePayloadJSON("place-dup"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrSavedPlaceExists)

		appErr, ok := err.(*apperrors.AppError)
		assert.True(t, ok)
		attached, ok := appErr.Details["existing"].(dto.SavedPlaceResponse)
		assert.True(t, ok)
		assert.Equal(t, existing.ID, attached.ID)
		assert.Equal(t, domain.StatusVisited, attached.Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockTrip := &MockTripRepository{}
		uc := usecase.NewIngestUseCase(mockSaved, mockTrip, logger)

		resp, err := uc.Ingest(ctx, userID, dto.IngestPlaceRequest{
			Status: ptrString("ARCHIVED"),
			Place:  placePayloadJSON("place-bad-status"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	})
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
