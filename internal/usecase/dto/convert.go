package dto

import (
	"time"

	"github.com/saved-places-service/internal/domain"
)

// ConvertSavedPlace maps a ledger entry to its response shape.
func ConvertSavedPlace(s *domain.SavedPlace) SavedPlaceResponse {
	return SavedPlaceResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		PlaceID:   s.PlaceID,
		TripID:    s.TripID,
		Status:    s.Status,
		UserNotes: s.UserNotes,
		VisitedAt: s.VisitedAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ConvertPlace maps a canonical place to its response shape.
func ConvertPlace(p *domain.Place) PlaceResponse {
	return PlaceResponse{
		ExternalID: p.ExternalID,
		Name:       p.Name,
		Lat:        p.Lat,
		Lng:        p.Lng,
	}
}

// ConvertPlaceCache maps a cache row to its response shape, annotating
// staleness against the retention window.
func ConvertPlaceCache(c *domain.PlaceCache, now time.Time, retention time.Duration) *PlaceCacheResponse {
	if c == nil {
		return nil
	}
	return &PlaceCacheResponse{
		FormattedAddress: c.FormattedAddress,
		Types:            c.Types,
		PlusCode:         c.PlusCode,
		Viewport:         c.Viewport,
		FetchedAt:        c.FetchedAt,
		Stale:            c.IsStale(now, retention),
	}
}
