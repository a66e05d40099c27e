package usecase_test

import (
	"context"
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

func TestSavedPlaceUseCase_Update(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	newUC := func(saved *MockSavedPlaceRepository, place *MockPlaceRepository) *usecase.SavedPlaceUseCase {
		return usecase.NewSavedPlaceUseCase(saved, place, testRetention, logger)
	}

	t.Run("forwards a status change and maps visited_at back", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		uc := newUC(mockSaved, &MockPlaceRepository{})

		mockSaved.On("GetByID", ctx, entryID).Return(&domain.SavedPlace{
			ID: entryID, UserID: userID, Status: domain.StatusWishlist,
		}, nil)

		mockSaved.On("Update", ctx, entryID, mock.MatchedBy(func(u domain.SavedPlaceUpdate) bool {
			return u.Status != nil && *u.Status == domain.StatusVisited && u.UserNotes == nil
		})).Return(&domain.SavedPlace{
			ID: entryID, UserID: userID, Status: domain.StatusVisited,
			VisitedAt: ptrTime(time.Now()),
		}, nil)

		resp, err := uc.Update(ctx, userID, entryID, dto.UpdateSavedPlaceRequest{
			Status: ptrString("VISITED"),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusVisited, resp.Status)
		assert.NotNil(t, resp.VisitedAt)
		mockSaved.AssertExpectations(t)
	})

	t.Run("updates notes without touching the status", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		uc := newUC(mockSaved, &MockPlaceRepository{})

		mockSaved.On("GetByID", ctx, entryID).Return(&domain.SavedPlace{
			ID: entryID, UserID: userID, Status: domain.StatusWishlist,
		}, nil)
		mockSaved.On("Update", ctx, entryID, mock.MatchedBy(func(u domain.SavedPlaceUpdate) bool {
			return u.Status == nil && u.UserNotes != nil
		})).Return(&domain.SavedPlace{
			ID: entryID, UserID: userID, Status: domain.StatusWishlist,
			UserNotes: ptrString("check opening hours"),
		}, nil)

		resp, err := uc.Update(ctx, userID, entryID, dto.UpdateSavedPlaceRequest{
			UserNotes: ptrString("check opening hours"),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusWishlist, resp.Status)
	})

	t.Run("hides other users' entries behind NotFound", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		uc := newUC(mockSaved, &MockPlaceRepository{})

		mockSaved.On("GetByID", ctx, entryID).Return(&domain.SavedPlace{
			ID: entryID, UserID: uuid.New(), Status: domain.StatusWishlist,
		}, nil)

		resp, err := uc.Update(ctx, userID, entryID, dto.UpdateSavedPlaceRequest{
			Status: ptrString("VISITED"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrSavedPlaceNotFound)
		mockSaved.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		uc := newUC(mockSaved, &MockPlaceRepository{})

		mockSaved.On("GetByID", ctx, entryID).Return(&domain.SavedPlace{
			ID: entryID, UserID: userID, Status: domain.StatusWishlist,
		}, nil)

		resp, err := uc.Update(ctx, userID, entryID, dto.UpdateSavedPlaceRequest{
			Status: ptrString("DONE"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	})
}

func TestSavedPlaceUseCase_List(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("joins places and annotates cache staleness", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockPlace := &MockPlaceRepository{}
		uc := usecase.NewSavedPlaceUseCase(mockSaved, mockPlace, testRetention, logger)

		entries := []*domain.SavedPlaceWithPlace{
			savedAt(userID, "fresh-place", 1, 1),
			savedAt(userID, "stale-place", 2, 2),
		}
		mockSaved.On("ListByUser", ctx, userID, (*domain.SavedStatus)(nil), (*uuid.UUID)(nil)).
			Return(entries, nil)

		now := time.Now().UTC()
		mockPlace.On("GetCachesByExternalIDs", ctx, mock.Anything).
			Return(map[string]*domain.PlaceCache{
				"fresh-place": {ExternalID: "fresh-place", FetchedAt: now.Add(-time.Hour)},
				"stale-place": {ExternalID: "stale-place", FetchedAt: now.Add(-testRetention - time.Hour)},
			}, nil)

		resp, err := uc.List(ctx, userID, dto.ListSavedPlacesRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.False(t, resp.Items[0].Cache.Stale)
		assert.True(t, resp.Items[1].Cache.Stale)
	})

	t.Run("forwards status and trip filters", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		mockPlace := &MockPlaceRepository{}
		uc := usecase.NewSavedPlaceUseCase(mockSaved, mockPlace, testRetention, logger)

		tripID := uuid.New()
		wishlist := domain.StatusWishlist
		mockSaved.On("ListByUser", ctx, userID, &wishlist, &tripID).
			Return([]*domain.SavedPlaceWithPlace{}, nil)

		resp, err := uc.List(ctx, userID, dto.ListSavedPlacesRequest{
			Status: ptrString("WISHLIST"),
			TripID: &tripID,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		mockSaved.AssertExpectations(t)
	})
}

func TestSavedPlaceUseCase_Unsave(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	t.Run("removes an owned entry", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		uc := usecase.NewSavedPlaceUseCase(mockSaved, &MockPlaceRepository{}, testRetention, logger)

		mockSaved.On("GetByID", ctx, entryID).Return(&domain.SavedPlace{
			ID: entryID, UserID: userID,
		}, nil)
		mockSaved.On("Delete", ctx, entryID).Return(nil)

		err := uc.Unsave(ctx, userID, entryID)

		assert.NoError(t, err)
		mockSaved.AssertExpectations(t)
	})

	t.Run("refuses a foreign entry", func(t *testing.T) {
		mockSaved := &MockSavedPlaceRepository{}
		uc := usecase.NewSavedPlaceUseCase(mockSaved, &MockPlaceRepository{}, testRetention, logger)

		mockSaved.On("GetByID", ctx, entryID).Return(&domain.SavedPlace{
			ID: entryID, UserID: uuid.New(),
		}, nil)

		err := uc.Unsave(ctx, userID, entryID)

		assert.ErrorIs(t, err, apperrors.ErrSavedPlaceNotFound)
		mockSaved.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
