package domain

import "time"

// Stream names (must match the refresh collaborator).
const (
	StreamPlaceRefresh = "stream:place:refresh"
)

// PlaceRefreshEvent asks the refresh collaborator to re-fetch a place
// from the upstream provider and overwrite its cache row. The core only
// publishes these; it never calls the provider itself.
type PlaceRefreshEvent struct {
	ExternalID  string    `json:"external_id"`
	FetchedAt   time.Time `json:"fetched_at"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage is a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
