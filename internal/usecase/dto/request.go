package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// IngestPlaceRequest carries an upstream place payload to save for the
// requesting user. Place is the provider document as-is; it is parsed
// and validated by the ingestion pipeline, not here, so upstream schema
// drift never fails at the transport layer.
type IngestPlaceRequest struct {
	TripID    *uuid.UUID      `json:"trip_id,omitempty"`
	Status    *string         `json:"status,omitempty" validate:"omitempty,oneof=WISHLIST VISITED SKIPPED"`
	UserNotes *string         `json:"user_notes,omitempty"`
	Place     json.RawMessage `json:"place" validate:"required"`
}

// NearbyRequest is a proximity query around the user's current position.
type NearbyRequest struct {
	Lat          float64 `json:"lat" validate:"min=-90,max=90"`
	Lng          float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"min=0"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=WISHLIST VISITED SKIPPED"`
}

// UpdateSavedPlaceRequest is a partial update: only supplied fields are
// touched.
type UpdateSavedPlaceRequest struct {
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=WISHLIST VISITED SKIPPED"`
	UserNotes *string `json:"user_notes,omitempty"`
}

// ListSavedPlacesRequest filters a user's saved-place listing.
type ListSavedPlacesRequest struct {
	Status *string    `json:"status,omitempty" validate:"omitempty,oneof=WISHLIST VISITED SKIPPED"`
	TripID *uuid.UUID `json:"trip_id,omitempty"`
}
