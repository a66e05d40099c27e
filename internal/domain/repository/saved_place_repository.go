package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/saved-places-service/internal/domain"
)

// SavedPlaceRepository manages ledger entries and the atomic ingest write.
type SavedPlaceRepository interface {
	// SaveWithPlace performs the compound ingest write in one
	// transaction: insert-or-get the place by external id, seed its
	// cache row when (and only when) the place is new, then insert the
	// ledger entry. A duplicate (user, place) pair aborts the whole
	// transaction with errors.ErrSavedPlaceExists; uniqueness races on
	// the external id resolve to the winner's row.
	SaveWithPlace(ctx context.Context, place *domain.Place, cache *domain.PlaceCache, saved *domain.SavedPlace) (*domain.SavedPlace, error)

	// GetByID returns a ledger entry by id.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedPlace, error)

	// GetByUserAndPlace returns the ledger entry for a (user, place) pair.
	GetByUserAndPlace(ctx context.Context, userID uuid.UUID, placeID string) (*domain.SavedPlace, error)

	// ListByUser returns a user's ledger entries joined with their
	// places, optionally restricted to one status and/or one trip.
	ListByUser(ctx context.Context, userID uuid.UUID, status *domain.SavedStatus, tripID *uuid.UUID) ([]*domain.SavedPlaceWithPlace, error)

	// Update applies a partial update and returns the updated row.
	Update(ctx context.Context, id uuid.UUID, update domain.SavedPlaceUpdate) (*domain.SavedPlace, error)

	// Delete removes a ledger entry.
	Delete(ctx context.Context, id uuid.UUID) error
}
