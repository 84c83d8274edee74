package services

import (
	"context"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"
)

// RideSyncService pulls activities from the fitness service into the
// local ride store. Only "Ride" activities with a gear id that maps to a
// known bike are kept; the interval engine trusts the stored set.
type RideSyncService struct {
	source   ports.RideSource
	rideRepo ports.RideRepository
	bikeRepo ports.BikeRepository
	logger   ports.LoggerPort
}

func NewRideSyncService(
	source ports.RideSource,
	rideRepo ports.RideRepository,
	bikeRepo ports.BikeRepository,
	logger ports.LoggerPort,
) *RideSyncService {
	return &RideSyncService{
		source:   source,
		rideRepo: rideRepo,
		bikeRepo: bikeRepo,
		logger:   logger,
	}
}

// SyncRides fetches activities newer than the latest stored ride and
// upserts the ones that resolve to a bike.
func (s *RideSyncService) SyncRides(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, nil
	}

	since, err := s.rideRepo.LatestRideTime(ctx)
	if err != nil {
		s.logger.Warn("Could not determine last synced ride, syncing from scratch", map[string]interface{}{
			"error": err.Error(),
		})
		since = time.Time{}
	}

	fetched, err := s.source.FetchRidesSince(ctx, since)
	if err != nil {
		s.logger.Error("Failed to fetch rides", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, err
	}

	gearCache := make(map[string]*domain.Bike)
	var resolved []domain.RideRecord
	for _, ride := range fetched {
		if ride.ActivityType != "Ride" || ride.GearID == "" {
			continue
		}

		bike, ok := gearCache[ride.GearID]
		if !ok {
			bike, err = s.bikeRepo.GetBikeByGearID(ctx, ride.GearID)
			if err != nil {
				// Unknown gear: the rider has equipment we don't track.
				gearCache[ride.GearID] = nil
				continue
			}
			gearCache[ride.GearID] = bike
		}
		if bike == nil {
			continue
		}

		ride.BikeID = bike.BikeID
		resolved = append(resolved, ride)
	}

	if len(resolved) == 0 {
		return 0, nil
	}

	if err := s.rideRepo.UpsertRides(ctx, resolved); err != nil {
		s.logger.Error("Failed to store rides", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, err
	}

	s.logger.Info("Rides synced", map[string]interface{}{
		"fetched_count": len(fetched),
		"stored_count":  len(resolved),
	})

	return len(resolved), nil
}
