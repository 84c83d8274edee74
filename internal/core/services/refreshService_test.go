package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refreshFixture struct {
	service      *RefreshService
	intervalRepo *fakeIntervalRepo
	rideRepo     *fakeRideRepo
	notifier     *fakeNotifier
	metrics      *fakeMetrics
	now          time.Time
}

func newRefreshFixture() *refreshFixture {
	data := catalog.DefaultCatalogData()
	parts := catalog.NewPartTemplateCatalog(data.PartTemplates, data.Categories)

	f := &refreshFixture{
		intervalRepo: newFakeIntervalRepo(),
		rideRepo:     &fakeRideRepo{},
		notifier:     &fakeNotifier{},
		metrics:      newFakeMetrics(),
		now:          time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	f.service = NewRefreshService(f.intervalRepo, f.rideRepo, nil, f.notifier, parts, nopLogger{}, f.metrics)
	f.service.now = func() time.Time { return f.now }
	return f
}

func (f *refreshFixture) addOverdueInterval(t *testing.T, bikeID uuid.UUID) *domain.ServiceInterval {
	t.Helper()
	lastService := f.now.Add(-30 * 24 * time.Hour)
	interval := &domain.ServiceInterval{
		ID:              uuid.New(),
		BikeID:          bikeID,
		Part:            catalog.PartChain,
		IntervalHours:   10,
		Notify:          true,
		LastServiceDate: lastService,
	}
	_, err := f.intervalRepo.CreateInterval(context.Background(), interval)
	require.NoError(t, err)
	require.NoError(t, f.rideRepo.UpsertRides(context.Background(), []domain.RideRecord{
		ride(bikeID, lastService.Add(time.Hour), 12),
	}))
	return interval
}

func TestRefreshAllSendsReminderForOverdueInterval(t *testing.T) {
	f := newRefreshFixture()
	interval := f.addOverdueInterval(t, uuid.New())

	require.NoError(t, f.service.RefreshAll(context.Background()))

	require.Equal(t, 1, f.notifier.sent())
	assert.Equal(t, interval.ID, f.notifier.sends[0].intervalID)
	assert.Contains(t, f.notifier.sends[0].title, "Chain")
	assert.Equal(t, 1, f.metrics.notificationsSent)

	stored, err := f.intervalRepo.GetIntervalByID(context.Background(), interval.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastNotificationDate)
	assert.Equal(t, f.now, *stored.LastNotificationDate)
}

func TestRefreshAllThrottlesRepeatReminders(t *testing.T) {
	f := newRefreshFixture()
	f.addOverdueInterval(t, uuid.New())

	require.NoError(t, f.service.RefreshAll(context.Background()))
	require.Equal(t, 1, f.notifier.sent())

	// Three days later: still overdue, still inside the throttle window.
	f.now = f.now.Add(3 * 24 * time.Hour)
	require.NoError(t, f.service.RefreshAll(context.Background()))
	assert.Equal(t, 1, f.notifier.sent())
	assert.Equal(t, 1, f.metrics.notificationsThrottle)

	// Eight days after the first reminder the window has passed.
	f.now = f.now.Add(5 * 24 * time.Hour)
	require.NoError(t, f.service.RefreshAll(context.Background()))
	assert.Equal(t, 2, f.notifier.sent())
}

func TestRefreshAllSkipsHealthyAndMutedIntervals(t *testing.T) {
	f := newRefreshFixture()
	bikeID := uuid.New()

	healthy := &domain.ServiceInterval{
		ID:              uuid.New(),
		BikeID:          bikeID,
		Part:            catalog.PartCassette,
		IntervalHours:   300,
		Notify:          true,
		LastServiceDate: f.now.Add(-24 * time.Hour),
	}
	muted := &domain.ServiceInterval{
		ID:              uuid.New(),
		BikeID:          bikeID,
		Part:            catalog.PartChain,
		IntervalHours:   10,
		Notify:          false,
		LastServiceDate: f.now.Add(-30 * 24 * time.Hour),
	}
	for _, interval := range []*domain.ServiceInterval{healthy, muted} {
		_, err := f.intervalRepo.CreateInterval(context.Background(), interval)
		require.NoError(t, err)
	}
	require.NoError(t, f.rideRepo.UpsertRides(context.Background(), []domain.RideRecord{
		ride(bikeID, f.now.Add(-20*24*time.Hour), 12),
	}))

	require.NoError(t, f.service.RefreshAll(context.Background()))
	assert.Zero(t, f.notifier.sent())
}

func TestRefreshAllRetriesFailedSendNextCycle(t *testing.T) {
	f := newRefreshFixture()
	interval := f.addOverdueInterval(t, uuid.New())

	f.notifier.err = fmt.Errorf("gateway unreachable")
	require.NoError(t, f.service.RefreshAll(context.Background()))
	assert.Zero(t, f.notifier.sent())
	assert.Zero(t, f.metrics.notificationsSent)

	// The timestamp is only stamped after a successful dispatch attempt,
	// so the next cycle tries again immediately.
	stored, err := f.intervalRepo.GetIntervalByID(context.Background(), interval.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastNotificationDate)

	f.notifier.err = nil
	require.NoError(t, f.service.RefreshAll(context.Background()))
	assert.Equal(t, 1, f.notifier.sent())
}

func TestComposeReminderUsesTemplateName(t *testing.T) {
	f := newRefreshFixture()
	bikeID := uuid.New()
	lastService := f.now.Add(-30 * 24 * time.Hour)
	interval := &domain.ServiceInterval{
		ID:              uuid.New(),
		BikeID:          bikeID,
		Part:            catalog.PartForkLowers,
		IntervalHours:   50,
		Notify:          true,
		LastServiceDate: lastService,
	}
	rides := []domain.RideRecord{ride(bikeID, lastService.Add(time.Hour), 62)}

	title, body := f.service.composeReminder(interval, rides)
	assert.Equal(t, "Fork lowers service due", title)
	assert.Contains(t, body, "12.0 hours")
	assert.Contains(t, body, "50 hour")
}
