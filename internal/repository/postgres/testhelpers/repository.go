package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPlaceRepositoryForTest creates a place repository with test database and logger
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewPlaceRepository(pgDB)
}

// NewSavedPlaceRepositoryForTest creates a saved-place repository with test database and logger
func NewSavedPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.SavedPlaceRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewSavedPlaceRepository(pgDB)
}

// NewTripRepositoryForTest creates a trip repository with test database and logger
func NewTripRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TripRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewTripRepository(pgDB)
}

// NewStatsRepositoryForTest creates a stats repository with test database and logger
func NewStatsRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StatsRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewStatsRepository(pgDB)
}
