package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"github.com/google/uuid"
)

// RefreshService runs the periodic refresh cycle: sync rides, recompute
// every interval's status and send reminders for due intervals. The pure
// status computation is lock-free; the read-decide-write sequence around
// a notification is serialized per interval so two overlapping refreshes
// cannot both dispatch before either records the timestamp.
type RefreshService struct {
	intervalRepo ports.IntervalRepository
	rideRepo     ports.RideRepository
	rideSync     *RideSyncService
	notifier     ports.NotificationPort
	parts        partNamer
	logger       ports.LoggerPort
	metrics      ports.MetricsPort

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex

	now func() time.Time
}

type partNamer interface {
	Get(id string) *domain.PartTemplate
}

func NewRefreshService(
	intervalRepo ports.IntervalRepository,
	rideRepo ports.RideRepository,
	syncService *RideSyncService,
	notifier ports.NotificationPort,
	parts partNamer,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *RefreshService {
	return &RefreshService{
		intervalRepo: intervalRepo,
		rideRepo:     rideRepo,
		rideSync:     syncService,
		notifier:     notifier,
		parts:        parts,
		logger:       logger,
		metrics:      metrics,
		locks:        make(map[uuid.UUID]*sync.Mutex),
		now:          time.Now,
	}
}

// Run ticks RefreshAll until the context is cancelled.
func (s *RefreshService) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RefreshAll(ctx); err != nil {
				s.logger.Error("Refresh cycle failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// RefreshAll performs one full refresh cycle. Notification delivery is
// best effort; a failed send is logged and retried on a later cycle
// because the timestamp is only recorded after the attempt.
func (s *RefreshService) RefreshAll(ctx context.Context) error {
	if s.rideSync != nil {
		if _, err := s.rideSync.SyncRides(ctx); err != nil {
			s.logger.Warn("Ride sync failed, refreshing against stored rides", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	intervals, err := s.intervalRepo.ListIntervals(ctx)
	if err != nil {
		return fmt.Errorf("listing intervals: %w", err)
	}

	ridesByBike := make(map[uuid.UUID][]domain.RideRecord)
	notified := 0
	for _, interval := range intervals {
		rides, ok := ridesByBike[interval.BikeID]
		if !ok {
			rides, err = s.rideRepo.GetRidesByBikeID(ctx, interval.BikeID)
			if err != nil {
				s.logger.Warn("Failed to load rides for bike", map[string]interface{}{
					"error":   err.Error(),
					"bike_id": interval.BikeID.String(),
				})
				continue
			}
			ridesByBike[interval.BikeID] = rides
		}

		if s.refreshInterval(ctx, interval, rides) {
			notified++
		}
	}

	s.logger.Info("Refresh cycle complete", map[string]interface{}{
		"intervals_count": len(intervals),
		"notified_count":  notified,
	})
	return nil
}

// refreshInterval re-evaluates one interval under its lock and sends a
// reminder when due. Returns true if a notification went out.
func (s *RefreshService) refreshInterval(ctx context.Context, interval *domain.ServiceInterval, rides []domain.RideRecord) bool {
	lock := s.lockFor(interval.ID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	if !IsNotificationDue(interval, rides, now) {
		if interval.Notify && HoursUntilService(interval, rides) <= 0 {
			s.metrics.IncNotificationsThrottled()
		}
		return false
	}

	title, body := s.composeReminder(interval, rides)
	if err := s.notifier.Send(ctx, interval.ID, title, body); err != nil {
		s.logger.Warn("Notification dispatch failed", map[string]interface{}{
			"error":       err.Error(),
			"interval_id": interval.ID.String(),
		})
		return false
	}

	// Attempted counts as sent: the channel gives no reliable
	// synchronous confirmation.
	RecordNotificationSent(interval, now)
	if _, err := s.intervalRepo.UpdateInterval(ctx, interval); err != nil {
		s.logger.Error("Failed to record notification timestamp", map[string]interface{}{
			"error":       err.Error(),
			"interval_id": interval.ID.String(),
		})
		return true
	}

	s.metrics.IncNotificationsSent()
	return true
}

func (s *RefreshService) composeReminder(interval *domain.ServiceInterval, rides []domain.RideRecord) (title, body string) {
	partName := interval.Part
	if template := s.parts.Get(interval.Part); template != nil {
		partName = template.Name
	}

	overdueBy := -HoursUntilService(interval, rides)
	title = fmt.Sprintf("%s service due", partName)
	body = fmt.Sprintf("%s has %.1f hours of use past its %.0f hour service interval.",
		partName, overdueBy, interval.IntervalHours)
	return title, body
}

func (s *RefreshService) lockFor(intervalID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[intervalID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[intervalID] = lock
	}
	return lock
}
