package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRideSource struct {
	rides     []domain.RideRecord
	lastSince time.Time
	calls     int
}

func (s *fakeRideSource) FetchRidesSince(_ context.Context, since time.Time) ([]domain.RideRecord, error) {
	s.lastSince = since
	s.calls++
	return s.rides, nil
}

type fakeBikeRepo struct {
	byGearID map[string]*domain.Bike
}

func (r *fakeBikeRepo) CreateBike(_ context.Context, bike *domain.Bike) (*domain.Bike, error) {
	return bike, nil
}

func (r *fakeBikeRepo) GetBikeByID(_ context.Context, bikeID uuid.UUID) (*domain.Bike, error) {
	for _, bike := range r.byGearID {
		if bike.BikeID == bikeID {
			return bike, nil
		}
	}
	return nil, fmt.Errorf("bike not found: %s", bikeID)
}

func (r *fakeBikeRepo) GetBikeByGearID(_ context.Context, gearID string) (*domain.Bike, error) {
	bike, ok := r.byGearID[gearID]
	if !ok {
		return nil, fmt.Errorf("no bike for gear: %s", gearID)
	}
	return bike, nil
}

func (r *fakeBikeRepo) GetBikesByUserID(context.Context, uuid.UUID) ([]*domain.Bike, error) {
	return nil, nil
}

func (r *fakeBikeRepo) ListBikes(context.Context) ([]*domain.Bike, error) {
	return nil, nil
}

func (r *fakeBikeRepo) UpdateBike(_ context.Context, bike *domain.Bike) (*domain.Bike, error) {
	return bike, nil
}

func (r *fakeBikeRepo) DeleteBike(context.Context, uuid.UUID) error {
	return nil
}

func TestSyncRidesResolvesGearToBike(t *testing.T) {
	bike := &domain.Bike{BikeID: uuid.New(), BikeName: "Fuel EX", StravaGearID: "b1234"}
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	source := &fakeRideSource{rides: []domain.RideRecord{
		{RideID: 1, GearID: "b1234", ActivityType: "Ride", MovingTimeSeconds: 3600, StartTime: start},
		// Runs are not ride time, whatever gear they carry.
		{RideID: 2, GearID: "b1234", ActivityType: "Run", MovingTimeSeconds: 1800, StartTime: start},
		// No gear attached.
		{RideID: 3, GearID: "", ActivityType: "Ride", MovingTimeSeconds: 1800, StartTime: start},
		// Gear that maps to no known bike.
		{RideID: 4, GearID: "b9999", ActivityType: "Ride", MovingTimeSeconds: 1800, StartTime: start},
	}}
	rideRepo := &fakeRideRepo{}
	bikeRepo := &fakeBikeRepo{byGearID: map[string]*domain.Bike{"b1234": bike}}

	s := NewRideSyncService(source, rideRepo, bikeRepo, nopLogger{})

	stored, err := s.SyncRides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	rides, err := rideRepo.GetRidesByBikeID(context.Background(), bike.BikeID)
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, int64(1), rides[0].RideID)
	assert.Equal(t, bike.BikeID, rides[0].BikeID)
}

func TestSyncRidesUsesLatestStoredRideAsCursor(t *testing.T) {
	bike := &domain.Bike{BikeID: uuid.New(), BikeName: "Fuel EX", StravaGearID: "b1234"}
	latest := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	rideRepo := &fakeRideRepo{}
	require.NoError(t, rideRepo.UpsertRides(context.Background(), []domain.RideRecord{
		{RideID: 1, BikeID: bike.BikeID, ActivityType: "Ride", StartTime: latest},
	}))

	source := &fakeRideSource{}
	s := NewRideSyncService(source, rideRepo, &fakeBikeRepo{byGearID: map[string]*domain.Bike{"b1234": bike}}, nopLogger{})

	_, err := s.SyncRides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, latest, source.lastSince)
}

func TestSyncRidesWithoutSourceIsNoOp(t *testing.T) {
	s := NewRideSyncService(nil, &fakeRideRepo{}, &fakeBikeRepo{}, nopLogger{})

	stored, err := s.SyncRides(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stored)
}
