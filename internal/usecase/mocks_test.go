package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/saved-places-service/internal/domain"
)

// MockSavedPlaceRepository is a mock of SavedPlaceRepository
type MockSavedPlaceRepository struct {
	mock.Mock
}

func (m *MockSavedPlaceRepository) SaveWithPlace(ctx context.Context, place *domain.Place, cache *domain.PlaceCache, saved *domain.SavedPlace) (*domain.SavedPlace, error) {
	args := m.Called(ctx, place, cache, saved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPlace), args.Error(1)
}

func (m *MockSavedPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedPlace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPlace), args.Error(1)
}

func (m *MockSavedPlaceRepository) GetByUserAndPlace(ctx context.Context, userID uuid.UUID, placeID string) (*domain.SavedPlace, error) {
	args := m.Called(ctx, userID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPlace), args.Error(1)
}

func (m *MockSavedPlaceRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.SavedStatus, tripID *uuid.UUID) ([]*domain.SavedPlaceWithPlace, error) {
	args := m.Called(ctx, userID, status, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SavedPlaceWithPlace), args.Error(1)
}

func (m *MockSavedPlaceRepository) Update(ctx context.Context, id uuid.UUID, update domain.SavedPlaceUpdate) (*domain.SavedPlace, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPlace), args.Error(1)
}

func (m *MockSavedPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTripRepository is a mock of TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripRepository) FindOrCreateDefault(ctx context.Context, userID uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

// MockPlaceRepository is a mock of PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Place, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetCache(ctx context.Context, externalID string) (*domain.PlaceCache, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceCache), args.Error(1)
}

func (m *MockPlaceRepository) GetCachesByExternalIDs(ctx context.Context, externalIDs []string) (map[string]*domain.PlaceCache, error) {
	args := m.Called(ctx, externalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.PlaceCache), args.Error(1)
}

func (m *MockPlaceRepository) ListWithCache(ctx context.Context) ([]*domain.CachedPlace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CachedPlace), args.Error(1)
}

func (m *MockPlaceRepository) RefreshCache(ctx context.Context, cache *domain.PlaceCache) error {
	args := m.Called(ctx, cache)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetPlaceList(ctx context.Context) ([]*domain.CachedPlace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CachedPlace), args.Error(1)
}

func (m *MockCacheRepository) SetPlaceList(ctx context.Context, places []*domain.CachedPlace, ttl time.Duration) error {
	args := m.Called(ctx, places, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStatistics(ctx context.Context, retention time.Duration) (*domain.Statistics, error) {
	args := m.Called(ctx, retention)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func ptrString(s string) *string {
	return &s
}
