package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedStatus is the lifecycle status of a saved place. Any status may
// move to any other.
type SavedStatus string

const (
	StatusWishlist SavedStatus = "WISHLIST"
	StatusVisited  SavedStatus = "VISITED"
	StatusSkipped  SavedStatus = "SKIPPED"
)

// Valid reports whether s is one of the known statuses.
func (s SavedStatus) Valid() bool {
	switch s {
	case StatusWishlist, StatusVisited, StatusSkipped:
		return true
	}
	return false
}

// SavedPlace is one user's relationship to one place within one trip.
// (UserID, PlaceID) is unique across all trips. VisitedAt is non-nil
// exactly while Status is VISITED.
type SavedPlace struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"user_id" db:"user_id"`
	PlaceID   string      `json:"place_id" db:"place_id"`
	TripID    uuid.UUID   `json:"trip_id" db:"trip_id"`
	Status    SavedStatus `json:"status" db:"status"`
	UserNotes *string     `json:"user_notes,omitempty" db:"user_notes"`
	VisitedAt *time.Time  `json:"visited_at,omitempty" db:"visited_at"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// SavedPlaceUpdate is a partial update of a ledger entry. Nil fields are
// left untouched. VisitedAt is never set by callers: the repository
// couples it to the status transition inside the update statement.
type SavedPlaceUpdate struct {
	Status    *SavedStatus
	UserNotes *string
}

// SavedPlaceWithPlace joins a ledger entry with its canonical place,
// the unit the proximity scan operates on.
type SavedPlaceWithPlace struct {
	SavedPlace SavedPlace
	Place      Place
}

// Trip is the minimal projection of the trip collaborator the core
// needs: existence and ownership.
type Trip struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultTripName names the trip created when an ingest arrives without one.
const DefaultTripName = "My Places"
