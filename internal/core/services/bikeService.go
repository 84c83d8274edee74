package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/detect"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type BikeService struct {
	bikeRepo     ports.BikeRepository
	intervalRepo ports.IntervalRepository
	rideRepo     ports.RideRepository
	detector     *detect.Detector
	logger       ports.LoggerPort
	validate     *validator.Validate
	cache        ports.CachePort
}

func NewBikeService(
	bikeRepo ports.BikeRepository,
	intervalRepo ports.IntervalRepository,
	rideRepo ports.RideRepository,
	detector *detect.Detector,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *BikeService {
	return &BikeService{
		bikeRepo:     bikeRepo,
		intervalRepo: intervalRepo,
		rideRepo:     rideRepo,
		detector:     detector,
		logger:       logger,
		validate:     validate,
		cache:        cache,
	}
}

// CreateBike stores a bike. When no type is supplied the name is run
// through the detector; a Fallback result leaves the type unknown and the
// client prompts for a manual selection.
func (s *BikeService) CreateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, domain.DetectionResult, error) {
	if err := s.validate.Struct(bike); err != nil {
		s.logger.Error("Bike validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, domain.DetectionResult{}, fmt.Errorf("validation error: %w", err)
	}

	if bike.BikeID == uuid.Nil {
		bike.BikeID = uuid.New()
	}

	detection := s.detector.Detect(bike.BikeName)
	if bike.Type == "" || bike.Type == domain.UnknownType {
		bike.Type = detection.Type
	}
	if bike.Manufacturer == "" {
		bike.Manufacturer = detection.Manufacturer
	}
	if bike.Model == "" {
		bike.Model = detection.Model
	}

	createdBike, err := s.bikeRepo.CreateBike(ctx, bike)
	if err != nil {
		s.logger.Error("Failed to create bike", map[string]interface{}{
			"error":   err.Error(),
			"user_id": bike.UserID,
		})
		return nil, detection, err
	}

	s.logger.Info("Bike created successfully", map[string]interface{}{
		"bike_id":    createdBike.BikeID,
		"user_id":    createdBike.UserID,
		"confidence": string(detection.Confidence),
	})

	return createdBike, detection, nil
}

// Detect runs a dry-run detection against a free-form name.
func (s *BikeService) Detect(name string) domain.DetectionResult {
	return s.detector.Detect(name)
}

func (s *BikeService) GetBikeByID(ctx context.Context, bikeID string) (*domain.Bike, error) {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		s.logger.Error("Invalid UUID format", map[string]interface{}{
			"bike_id": bikeID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("invalid bike ID: %w", err)
	}

	cacheKey := fmt.Sprintf("bike:%s", bikeID)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cachedBike domain.Bike
		if err := json.Unmarshal(cachedData, &cachedBike); err == nil {
			return &cachedBike, nil
		}
	}

	bike, err := s.bikeRepo.GetBikeByID(ctx, bikeUUID)
	if err != nil {
		s.logger.Error("Failed to get bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return nil, err
	}

	bikeData, err := json.Marshal(bike)
	if err != nil {
		s.logger.Warn("Failed to marshal bike for cache", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
	} else {
		if err := s.cache.Set(cacheKey, bikeData, 15*time.Minute); err != nil {
			s.logger.Warn("Failed to cache bike", map[string]interface{}{
				"error":   err.Error(),
				"bike_id": bikeID,
			})
		}
	}

	return bike, nil
}

func (s *BikeService) GetBikesByUserID(ctx context.Context, userID string) ([]*domain.Bike, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		s.logger.Error("Invalid UUID format", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	bikes, err := s.bikeRepo.GetBikesByUserID(ctx, userUUID)
	if err != nil {
		s.logger.Error("Failed to get bikes", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	return bikes, nil
}

func (s *BikeService) UpdateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	if err := s.validate.Struct(bike); err != nil {
		s.logger.Error("Bike validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	updatedBike, err := s.bikeRepo.UpdateBike(ctx, bike)
	if err != nil {
		s.logger.Error("Failed to update bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bike.BikeID,
		})
		return nil, err
	}

	s.invalidateBike(bike.BikeID)

	return updatedBike, nil
}

// DeleteBike removes the bike, its rides and its intervals. Intervals
// cascade in the database as well; the explicit pass keeps the engine
// from ever computing against orphans if the cascade is disabled.
func (s *BikeService) DeleteBike(ctx context.Context, bikeID string) error {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		s.logger.Error("Invalid UUID format", map[string]interface{}{
			"bike_id": bikeID,
			"error":   err.Error(),
		})
		return fmt.Errorf("invalid bike ID: %w", err)
	}

	intervals, err := s.intervalRepo.GetIntervalsByBikeID(ctx, bikeUUID)
	if err == nil {
		for _, interval := range intervals {
			if err := s.intervalRepo.DeleteInterval(ctx, interval.ID); err != nil {
				s.logger.Warn("Failed to delete interval during bike delete", map[string]interface{}{
					"error":       err.Error(),
					"interval_id": interval.ID.String(),
				})
			}
		}
	}

	if err := s.rideRepo.DeleteRidesByBikeID(ctx, bikeUUID); err != nil {
		s.logger.Warn("Failed to delete rides during bike delete", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
	}

	if err := s.bikeRepo.DeleteBike(ctx, bikeUUID); err != nil {
		s.logger.Error("Failed to delete bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return err
	}

	s.invalidateBike(bikeUUID)

	s.logger.Info("Bike deleted successfully", map[string]interface{}{
		"bike_id": bikeID,
	})

	return nil
}

func (s *BikeService) invalidateBike(bikeID uuid.UUID) {
	for _, cacheKey := range []string{
		fmt.Sprintf("bike:%s", bikeID.String()),
		fmt.Sprintf("bike_status:%s", bikeID.String()),
	} {
		if err := s.cache.Delete(cacheKey); err != nil {
			s.logger.Warn("Failed to invalidate bike cache", map[string]interface{}{
				"error":   err.Error(),
				"bike_id": bikeID.String(),
			})
		}
	}
}
