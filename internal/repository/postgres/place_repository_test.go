package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/saved-places-service/internal/domain"
	"github.com/saved-places-service/internal/domain/repository"
	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/repository/postgres/testhelpers"
)

type PlaceRepositoryTestSuite struct {
	suite.Suite
	testDB    *testhelpers.TestDB
	repo      repository.PlaceRepository
	savedRepo repository.SavedPlaceRepository
	tripRepo  repository.TripRepository
	ctx       context.Context
}

func (s *PlaceRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	_ = testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")

	s.repo = testhelpers.NewPlaceRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.savedRepo = testhelpers.NewSavedPlaceRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.tripRepo = testhelpers.NewTripRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *PlaceRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *PlaceRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	err := s.testDB.Cleanup(s.ctx)
	s.NoError(err, "Failed to cleanup test database")
}

// seedPlace ingests one place through the saved-place write so rows go
// through the same path production uses.
func (s *PlaceRepositoryTestSuite) seedPlace(externalID string, fetchedAt time.Time) {
	userID := uuid.New()
	trip, err := s.tripRepo.FindOrCreateDefault(s.ctx, userID)
	s.Require().NoError(err)

	addr := "Passeig de Gracia, 43"
	_, err = s.savedRepo.SaveWithPlace(s.ctx,
		&domain.Place{ExternalID: externalID, Name: "Place " + externalID, Lat: 41.39, Lng: 2.16},
		&domain.PlaceCache{
			ExternalID:       externalID,
			FormattedAddress: &addr,
			Types:            []string{"museum"},
			PlusCode:         &domain.PlusCode{GlobalCode: "8FH495C6+XW", CompoundCode: "95C6+XW Barcelona"},
			Viewport: &domain.Viewport{
				Northeast: domain.Point{Lat: 41.40, Lng: 2.17},
				Southwest: domain.Point{Lat: 41.38, Lng: 2.15},
			},
			Payload:   json.RawMessage(`{"place_id":"` + externalID + `","name":"Place"}`),
			FetchedAt: fetchedAt,
		},
		&domain.SavedPlace{
			ID: uuid.New(), UserID: userID, PlaceID: externalID,
			TripID: trip.ID, Status: domain.StatusWishlist,
		},
	)
	s.Require().NoError(err)
}

func (s *PlaceRepositoryTestSuite) TestGetCache_RoundTrip() {
	fetchedAt := time.Now().UTC().Truncate(time.Millisecond)
	s.seedPlace("ext-cache", fetchedAt)

	cache, err := s.repo.GetCache(s.ctx, "ext-cache")
	s.NoError(err)
	s.Equal("ext-cache", cache.ExternalID)
	s.Equal([]string{"museum"}, cache.Types)
	s.Require().NotNil(cache.PlusCode)
	s.Equal("8FH495C6+XW", cache.PlusCode.GlobalCode)
	s.Require().NotNil(cache.Viewport)
	s.Equal(41.40, cache.Viewport.Northeast.Lat)
	s.WithinDuration(fetchedAt, cache.FetchedAt, time.Second)
	s.JSONEq(`{"place_id":"ext-cache","name":"Place"}`, string(cache.Payload))
}

func (s *PlaceRepositoryTestSuite) TestGetCache_NotFound() {
	_, err := s.repo.GetCache(s.ctx, "ext-missing")
	s.ErrorIs(err, errors.ErrPlaceNotFound)
}

func (s *PlaceRepositoryTestSuite) TestGetCachesByExternalIDs() {
	now := time.Now().UTC()
	s.seedPlace("ext-a", now)
	s.seedPlace("ext-b", now)

	caches, err := s.repo.GetCachesByExternalIDs(s.ctx, []string{"ext-a", "ext-b", "ext-absent"})
	s.NoError(err)
	s.Len(caches, 2)
	s.Contains(caches, "ext-a")
	s.Contains(caches, "ext-b")
	s.NotContains(caches, "ext-absent")

	empty, err := s.repo.GetCachesByExternalIDs(s.ctx, nil)
	s.NoError(err)
	s.Empty(empty)
}

func (s *PlaceRepositoryTestSuite) TestListWithCache() {
	now := time.Now().UTC()
	s.seedPlace("ext-one", now)
	s.seedPlace("ext-two", now)

	places, err := s.repo.ListWithCache(s.ctx)
	s.NoError(err)
	s.Len(places, 2)
	for _, p := range places {
		s.Equal(p.Place.ExternalID, p.Cache.ExternalID)
		s.NotEmpty(p.Cache.Types)
	}
}

func (s *PlaceRepositoryTestSuite) TestRefreshCache() {
	s.seedPlace("ext-refresh", time.Now().UTC().Add(-31*24*time.Hour))

	newAddr := "Updated address"
	newFetched := time.Now().UTC()
	err := s.repo.RefreshCache(s.ctx, &domain.PlaceCache{
		ExternalID:       "ext-refresh",
		FormattedAddress: &newAddr,
		Types:            []string{"museum", "art_gallery"},
		Payload:          json.RawMessage(`{"place_id":"ext-refresh","v":2}`),
		FetchedAt:        newFetched,
	})
	s.NoError(err)

	cache, err := s.repo.GetCache(s.ctx, "ext-refresh")
	s.NoError(err)
	s.Equal("Updated address", *cache.FormattedAddress)
	s.Equal([]string{"museum", "art_gallery"}, cache.Types)
	s.Nil(cache.PlusCode, "overwrite replaces the whole row")
	s.WithinDuration(newFetched, cache.FetchedAt, time.Second)
}

func (s *PlaceRepositoryTestSuite) TestRefreshCache_NotFound() {
	err := s.repo.RefreshCache(s.ctx, &domain.PlaceCache{
		ExternalID: "ext-ghost",
		FetchedAt:  time.Now().UTC(),
	})
	s.ErrorIs(err, errors.ErrPlaceNotFound)
}

func TestPlaceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PlaceRepositoryTestSuite))
}
