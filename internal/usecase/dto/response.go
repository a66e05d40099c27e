package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/saved-places-service/internal/domain"
)

// SavedPlaceResponse is a ledger entry as returned to clients.
type SavedPlaceResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	PlaceID   string             `json:"place_id"`
	TripID    uuid.UUID          `json:"trip_id"`
	Status    domain.SavedStatus `json:"status"`
	UserNotes *string            `json:"user_notes,omitempty"`
	VisitedAt *time.Time         `json:"visited_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// PlaceResponse is a canonical place as returned to clients.
type PlaceResponse struct {
	ExternalID string  `json:"external_id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// PlaceCacheResponse is the derived enrichment for display. Stale marks
// rows past the retention window; their fields must not be shown without
// a refresh.
type PlaceCacheResponse struct {
	FormattedAddress *string          `json:"formatted_address,omitempty"`
	Types            []string         `json:"types,omitempty"`
	PlusCode         *domain.PlusCode `json:"plus_code,omitempty"`
	Viewport         *domain.Viewport `json:"viewport,omitempty"`
	FetchedAt        time.Time        `json:"fetched_at"`
	Stale            bool             `json:"stale"`
}

// NearbyResult is one proximity hit: the ledger entry, its place, the
// display enrichment and the distance in both units.
type NearbyResult struct {
	SavedPlace     SavedPlaceResponse  `json:"saved_place"`
	Place          PlaceResponse       `json:"place"`
	Cache          *PlaceCacheResponse `json:"cache,omitempty"`
	DistanceKm     float64             `json:"distance_km"`
	DistanceMeters int                 `json:"distance_meters"`
}

// NearbyResponse is the ordered proximity result set.
type NearbyResponse struct {
	Results []NearbyResult `json:"results"`
	Total   int            `json:"total"`
}

// SavedPlaceListItem is one row of a saved-place listing.
type SavedPlaceListItem struct {
	SavedPlace SavedPlaceResponse  `json:"saved_place"`
	Place      PlaceResponse       `json:"place"`
	Cache      *PlaceCacheResponse `json:"cache,omitempty"`
}

// SavedPlaceListResponse lists a user's saved places.
type SavedPlaceListResponse struct {
	Items []SavedPlaceListItem `json:"items"`
	Total int                  `json:"total"`
}

// CachedPlaceResponse is one row of the cached-places listing.
type CachedPlaceResponse struct {
	Place PlaceResponse      `json:"place"`
	Cache PlaceCacheResponse `json:"cache"`
}

// CachedPlaceListResponse lists every cached place.
type CachedPlaceListResponse struct {
	Items []CachedPlaceResponse `json:"items"`
	Total int                   `json:"total"`
}
