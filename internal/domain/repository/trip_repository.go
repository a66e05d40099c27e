package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/saved-places-service/internal/domain"
)

// TripRepository is the slice of the trip collaborator the core consumes.
type TripRepository interface {
	// GetByID returns a trip or errors.ErrTripNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// FindOrCreateDefault returns the user's default trip, creating it
	// atomically when absent (insert-or-get under a uniqueness
	// constraint, never a read-then-write pair).
	FindOrCreateDefault(ctx context.Context, userID uuid.UUID) (*domain.Trip, error)
}
