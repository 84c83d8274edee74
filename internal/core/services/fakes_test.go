package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
)

// In-memory test doubles for the repository and adapter ports.

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type fakeCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.store[key]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", key)
	}
	return value, nil
}

func (c *fakeCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.deleted = append(c.deleted, key)
	return nil
}

type fakeIntervalRepo struct {
	mu          sync.Mutex
	intervals   map[uuid.UUID]*domain.ServiceInterval
	updateCalls int
}

func newFakeIntervalRepo() *fakeIntervalRepo {
	return &fakeIntervalRepo{intervals: make(map[uuid.UUID]*domain.ServiceInterval)}
}

func (r *fakeIntervalRepo) CreateInterval(_ context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *interval
	r.intervals[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeIntervalRepo) GetIntervalByID(_ context.Context, intervalID uuid.UUID) (*domain.ServiceInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	interval, ok := r.intervals[intervalID]
	if !ok {
		return nil, fmt.Errorf("interval not found: %s", intervalID)
	}
	copied := *interval
	return &copied, nil
}

func (r *fakeIntervalRepo) GetIntervalsByBikeID(_ context.Context, bikeID uuid.UUID) ([]*domain.ServiceInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ServiceInterval
	for _, interval := range r.intervals {
		if interval.BikeID == bikeID {
			copied := *interval
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeIntervalRepo) ListIntervals(_ context.Context) ([]*domain.ServiceInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ServiceInterval
	for _, interval := range r.intervals {
		copied := *interval
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeIntervalRepo) UpdateInterval(_ context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.intervals[interval.ID]; !ok {
		return nil, fmt.Errorf("interval not found: %s", interval.ID)
	}
	r.updateCalls++
	stored := *interval
	r.intervals[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeIntervalRepo) DeleteInterval(_ context.Context, intervalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.intervals, intervalID)
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []domain.ServiceRecord
}

func (r *fakeHistoryRepo) AppendRecord(_ context.Context, record *domain.ServiceRecord) (*domain.ServiceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *record
	stored.CreatedAt = time.Now()
	r.records = append(r.records, stored)
	return &stored, nil
}

func (r *fakeHistoryRepo) ListByIntervalID(_ context.Context, intervalID uuid.UUID) ([]domain.ServiceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ServiceRecord
	for _, record := range r.records {
		if record.IntervalID == intervalID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) DeleteByIntervalID(_ context.Context, intervalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, record := range r.records {
		if record.IntervalID != intervalID {
			kept = append(kept, record)
		}
	}
	r.records = kept
	return nil
}

type fakeRideRepo struct {
	mu    sync.Mutex
	rides []domain.RideRecord
}

func (r *fakeRideRepo) UpsertRides(_ context.Context, rides []domain.RideRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rides = append(r.rides, rides...)
	return nil
}

func (r *fakeRideRepo) GetRidesByBikeID(_ context.Context, bikeID uuid.UUID) ([]domain.RideRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RideRecord
	for _, ride := range r.rides {
		if ride.BikeID == bikeID {
			out = append(out, ride)
		}
	}
	return out, nil
}

func (r *fakeRideRepo) LatestRideTime(_ context.Context) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest time.Time
	for _, ride := range r.rides {
		if ride.StartTime.After(latest) {
			latest = ride.StartTime
		}
	}
	return latest, nil
}

func (r *fakeRideRepo) DeleteRidesByBikeID(_ context.Context, bikeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rides[:0]
	for _, ride := range r.rides {
		if ride.BikeID != bikeID {
			kept = append(kept, ride)
		}
	}
	r.rides = kept
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []fakeSend
	err   error
}

type fakeSend struct {
	intervalID uuid.UUID
	title      string
	body       string
}

func (n *fakeNotifier) Send(_ context.Context, intervalID uuid.UUID, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sends = append(n.sends, fakeSend{intervalID: intervalID, title: title, body: body})
	return nil
}

func (n *fakeNotifier) sent() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sends)
}

type fakeMetrics struct {
	mu                    sync.Mutex
	notificationsSent     int
	notificationsThrottle int
	detections            map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{detections: make(map[string]int)}
}

func (m *fakeMetrics) RecordRequest(string, string, int, time.Time) {}

func (m *fakeMetrics) IncNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsSent++
}

func (m *fakeMetrics) IncNotificationsThrottled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsThrottle++
}

func (m *fakeMetrics) IncDetections(confidence string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detections[confidence]++
}
