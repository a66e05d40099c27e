package domain

import "time"

// Statistics is an operator-facing snapshot of the stored data.
type Statistics struct {
	TotalPlaces      int                 `json:"total_places"`
	TotalSavedPlaces int                 `json:"total_saved_places"`
	SavedByStatus    map[SavedStatus]int `json:"saved_by_status"`
	StaleCacheRows   int                 `json:"stale_cache_rows"`
	GeneratedAt      time.Time           `json:"generated_at"`
}
