package domain

import (
	"encoding/json"
	"time"
)

// Place is the identity anchor for a physical location. Exactly one row
// exists per upstream external id; the external id is the permanent
// re-fetch key and is retained indefinitely.
type Place struct {
	ID         int64     `json:"id" db:"id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Name       string    `json:"name" db:"name"`
	Lat        float64   `json:"lat" db:"lat"`
	Lng        float64   `json:"lng" db:"lng"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PlaceCache holds the derived attributes of a place, 1:1 with Place via
// the external id. Everything here is time-bounded by FetchedAt; Payload
// keeps the full upstream document untyped so schema drift upstream never
// breaks ingestion.
type PlaceCache struct {
	ExternalID       string          `json:"external_id" db:"external_id"`
	FormattedAddress *string         `json:"formatted_address,omitempty" db:"formatted_address"`
	Types            []string        `json:"types,omitempty" db:"types"`
	PlusCode         *PlusCode       `json:"plus_code,omitempty" db:"plus_code"`
	Viewport         *Viewport       `json:"viewport,omitempty" db:"viewport"`
	Payload          json.RawMessage `json:"payload,omitempty" db:"payload"`
	FetchedAt        time.Time       `json:"fetched_at" db:"fetched_at"`
}

// IsStale reports whether the cached attributes have outlived the
// retention window and must not be shown without a refresh.
func (c *PlaceCache) IsStale(now time.Time, retention time.Duration) bool {
	return now.Sub(c.FetchedAt) > retention
}

// CachedPlace is a Place joined with its cache row for listing.
type CachedPlace struct {
	Place Place      `json:"place"`
	Cache PlaceCache `json:"cache"`
}
