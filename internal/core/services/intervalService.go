package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const statusCacheTTL = 15 * time.Minute

// IntervalService owns the service-interval lifecycle: creation from
// detector output or manual template choice, reset-on-service with
// history, edits and deletion.
type IntervalService struct {
	intervalRepo ports.IntervalRepository
	historyRepo  ports.HistoryRepository
	rideRepo     ports.RideRepository
	parts        *catalog.PartTemplateCatalog
	logger       ports.LoggerPort
	validate     *validator.Validate
	cache        ports.CachePort
}

func NewIntervalService(
	intervalRepo ports.IntervalRepository,
	historyRepo ports.HistoryRepository,
	rideRepo ports.RideRepository,
	parts *catalog.PartTemplateCatalog,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *IntervalService {
	return &IntervalService{
		intervalRepo: intervalRepo,
		historyRepo:  historyRepo,
		rideRepo:     rideRepo,
		parts:        parts,
		logger:       logger,
		validate:     validate,
		cache:        cache,
	}
}

// CreateFromDetection seeds intervals from a detection result. Template
// ids the catalog does not know are skipped, not fatal; the skipped ids
// are returned so callers can surface a diagnostic.
func (s *IntervalService) CreateFromDetection(
	ctx context.Context,
	bike *domain.Bike,
	detection domain.DetectionResult,
	lastServiceDate time.Time,
) ([]*domain.ServiceInterval, []string, error) {
	return s.createFromTemplates(ctx, bike, detection.SuggestedIntervals, lastServiceDate)
}

// CreateFromManualSelection is the same creation path driven by
// user-picked template ids.
func (s *IntervalService) CreateFromManualSelection(
	ctx context.Context,
	bike *domain.Bike,
	templateIDs []string,
	lastServiceDate time.Time,
) ([]*domain.ServiceInterval, []string, error) {
	return s.createFromTemplates(ctx, bike, templateIDs, lastServiceDate)
}

func (s *IntervalService) createFromTemplates(
	ctx context.Context,
	bike *domain.Bike,
	templateIDs []string,
	lastServiceDate time.Time,
) ([]*domain.ServiceInterval, []string, error) {
	if lastServiceDate.After(time.Now()) {
		return nil, nil, fmt.Errorf("last service date cannot be in the future")
	}

	created := make([]*domain.ServiceInterval, 0, len(templateIDs))
	var skipped []string

	for _, templateID := range templateIDs {
		template := s.parts.Get(templateID)
		if template == nil {
			s.logger.Warn("Unknown part template, skipping", map[string]interface{}{
				"template_id": templateID,
				"bike_id":     bike.BikeID.String(),
			})
			skipped = append(skipped, templateID)
			continue
		}

		interval := &domain.ServiceInterval{
			ID:              uuid.New(),
			BikeID:          bike.BikeID,
			Part:            template.ID,
			IntervalHours:   template.DefaultIntervalHours,
			Notify:          template.NotifyDefault,
			LastServiceDate: lastServiceDate,
		}
		if err := s.validate.Struct(interval); err != nil {
			return nil, skipped, fmt.Errorf("validation error: %w", err)
		}

		stored, err := s.intervalRepo.CreateInterval(ctx, interval)
		if err != nil {
			s.logger.Error("Failed to create interval", map[string]interface{}{
				"error":   err.Error(),
				"bike_id": bike.BikeID.String(),
				"part":    template.ID,
			})
			return created, skipped, err
		}
		created = append(created, stored)
	}

	s.invalidateBikeStatus(bike.BikeID)

	s.logger.Info("Intervals created", map[string]interface{}{
		"bike_id":       bike.BikeID.String(),
		"created_count": len(created),
		"skipped_count": len(skipped),
	})

	return created, skipped, nil
}

func (s *IntervalService) GetInterval(ctx context.Context, intervalID string) (*domain.ServiceInterval, error) {
	id, err := uuid.Parse(intervalID)
	if err != nil {
		return nil, fmt.Errorf("invalid interval ID: %w", err)
	}
	return s.intervalRepo.GetIntervalByID(ctx, id)
}

func (s *IntervalService) GetIntervalsByBikeID(ctx context.Context, bikeID uuid.UUID) ([]*domain.ServiceInterval, error) {
	return s.intervalRepo.GetIntervalsByBikeID(ctx, bikeID)
}

// UpdateInterval saves an edit. If nothing changed against the stored
// snapshot (date compared at day granularity), the save is a no-op and
// the stored interval is returned untouched.
func (s *IntervalService) UpdateInterval(ctx context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error) {
	if err := s.validate.Struct(interval); err != nil {
		s.logger.Error("Interval validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if interval.LastServiceDate.After(time.Now()) {
		return nil, fmt.Errorf("last service date cannot be in the future")
	}

	current, err := s.intervalRepo.GetIntervalByID(ctx, interval.ID)
	if err != nil {
		return nil, err
	}

	if !HasUnsavedChanges(SnapshotOf(current), SnapshotOf(interval)) {
		return current, nil
	}

	// Day-granularity rule: a changed time-of-day within the same day is
	// not a date change, so keep the stored timestamp.
	if SameCalendarDay(current.LastServiceDate, interval.LastServiceDate) {
		interval.LastServiceDate = current.LastServiceDate
	}

	updated, err := s.intervalRepo.UpdateInterval(ctx, interval)
	if err != nil {
		s.logger.Error("Failed to update interval", map[string]interface{}{
			"error":       err.Error(),
			"interval_id": interval.ID.String(),
		})
		return nil, err
	}

	s.invalidateBikeStatus(updated.BikeID)
	return updated, nil
}

// ResetAndLog logs a completed service: resets the usage baseline and
// appends an immutable history record. History is append-only; records
// go away only when the interval itself is deleted.
func (s *IntervalService) ResetAndLog(ctx context.Context, intervalID uuid.UUID, newDate time.Time, note string) (*domain.ServiceInterval, error) {
	if newDate.After(time.Now()) {
		return nil, fmt.Errorf("service date cannot be in the future")
	}

	interval, err := s.intervalRepo.GetIntervalByID(ctx, intervalID)
	if err != nil {
		return nil, err
	}

	ResetInterval(interval, newDate)

	updated, err := s.intervalRepo.UpdateInterval(ctx, interval)
	if err != nil {
		s.logger.Error("Failed to reset interval", map[string]interface{}{
			"error":       err.Error(),
			"interval_id": intervalID.String(),
		})
		return nil, err
	}

	record := &domain.ServiceRecord{
		ID:         uuid.New(),
		IntervalID: intervalID,
		Date:       newDate,
		IsReset:    true,
		Note:       note,
	}
	if _, err := s.historyRepo.AppendRecord(ctx, record); err != nil {
		s.logger.Error("Failed to append service history", map[string]interface{}{
			"error":       err.Error(),
			"interval_id": intervalID.String(),
		})
		return nil, err
	}

	s.invalidateBikeStatus(updated.BikeID)

	s.logger.Info("Interval reset", map[string]interface{}{
		"interval_id": intervalID.String(),
		"bike_id":     updated.BikeID.String(),
	})

	return updated, nil
}

// DeleteInterval removes the interval and cascades its history.
func (s *IntervalService) DeleteInterval(ctx context.Context, intervalID uuid.UUID) error {
	interval, err := s.intervalRepo.GetIntervalByID(ctx, intervalID)
	if err != nil {
		return err
	}

	if err := s.historyRepo.DeleteByIntervalID(ctx, intervalID); err != nil {
		return err
	}
	if err := s.intervalRepo.DeleteInterval(ctx, intervalID); err != nil {
		s.logger.Error("Failed to delete interval", map[string]interface{}{
			"error":       err.Error(),
			"interval_id": intervalID.String(),
		})
		return err
	}

	s.invalidateBikeStatus(interval.BikeID)

	s.logger.Info("Interval deleted", map[string]interface{}{
		"interval_id": intervalID.String(),
	})
	return nil
}

func (s *IntervalService) History(ctx context.Context, intervalID uuid.UUID) ([]domain.ServiceRecord, error) {
	return s.historyRepo.ListByIntervalID(ctx, intervalID)
}

// IntervalStatus is the computed per-interval view served to clients and
// consumed by the refresh loop. Derived on demand, never stored.
type IntervalStatus struct {
	Interval          *domain.ServiceInterval `json:"interval"`
	HoursUsed         float64                 `json:"hours_used"`
	HoursUntilService float64                 `json:"hours_until_service"`
	Urgency           domain.Urgency          `json:"urgency"`
	UsageFraction     float64                 `json:"usage_fraction"`
	UsageStatus       domain.UsageStatus      `json:"usage_status"`
}

// StatusForBike computes the status of every interval on a bike against
// its current ride history. The result is cached and invalidated on any
// interval mutation for the bike.
func (s *IntervalService) StatusForBike(ctx context.Context, bikeID uuid.UUID) ([]IntervalStatus, error) {
	cacheKey := fmt.Sprintf("bike_status:%s", bikeID.String())
	if cachedData, err := s.cache.Get(cacheKey); err == nil {
		var cached []IntervalStatus
		if err := json.Unmarshal(cachedData, &cached); err == nil {
			return cached, nil
		}
	}

	intervals, err := s.intervalRepo.GetIntervalsByBikeID(ctx, bikeID)
	if err != nil {
		return nil, err
	}
	rides, err := s.rideRepo.GetRidesByBikeID(ctx, bikeID)
	if err != nil {
		return nil, err
	}

	statuses := make([]IntervalStatus, 0, len(intervals))
	for _, interval := range intervals {
		statuses = append(statuses, StatusOf(interval, rides))
	}

	if data, err := json.Marshal(statuses); err == nil {
		if err := s.cache.Set(cacheKey, data, statusCacheTTL); err != nil {
			s.logger.Warn("Failed to cache bike status", map[string]interface{}{
				"error":   err.Error(),
				"bike_id": bikeID.String(),
			})
		}
	}
	return statuses, nil
}

// StatusOf derives all display figures from one hours-used computation.
func StatusOf(interval *domain.ServiceInterval, rides []domain.RideRecord) IntervalStatus {
	used := HoursUsed(interval, rides)
	remaining := interval.IntervalHours - used
	fraction := used / interval.IntervalHours
	return IntervalStatus{
		Interval:          interval,
		HoursUsed:         used,
		HoursUntilService: remaining,
		Urgency:           UrgencyFor(remaining),
		UsageFraction:     fraction,
		UsageStatus:       UsageStatusFor(fraction),
	}
}

func (s *IntervalService) invalidateBikeStatus(bikeID uuid.UUID) {
	cacheKey := fmt.Sprintf("bike_status:%s", bikeID.String())
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate bike status cache", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID.String(),
		})
	}
}

// IntervalSnapshot is the editable field set compared by
// HasUnsavedChanges.
type IntervalSnapshot struct {
	Part            string
	IntervalHours   float64
	Notify          bool
	BikeID          uuid.UUID
	LastServiceDate time.Time
}

func SnapshotOf(interval *domain.ServiceInterval) IntervalSnapshot {
	return IntervalSnapshot{
		Part:            interval.Part,
		IntervalHours:   interval.IntervalHours,
		Notify:          interval.Notify,
		BikeID:          interval.BikeID,
		LastServiceDate: interval.LastServiceDate,
	}
}

// HasUnsavedChanges reports whether an in-progress edit differs from the
// original snapshot. Dates compare at calendar-day granularity: two
// timestamps on the same day are the same value.
func HasUnsavedChanges(original, current IntervalSnapshot) bool {
	if original.Part != current.Part {
		return true
	}
	if original.IntervalHours != current.IntervalHours {
		return true
	}
	if original.Notify != current.Notify {
		return true
	}
	if original.BikeID != current.BikeID {
		return true
	}
	return !SameCalendarDay(original.LastServiceDate, current.LastServiceDate)
}
