package services

import (
	"context"
	"testing"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntervalService(intervalRepo *fakeIntervalRepo, historyRepo *fakeHistoryRepo, rideRepo *fakeRideRepo) *IntervalService {
	data := catalog.DefaultCatalogData()
	parts := catalog.NewPartTemplateCatalog(data.PartTemplates, data.Categories)
	return NewIntervalService(intervalRepo, historyRepo, rideRepo, parts, nopLogger{}, validator.New(), newFakeCache())
}

func testBike() *domain.Bike {
	return &domain.Bike{
		UserID:   uuid.New(),
		BikeID:   uuid.New(),
		BikeName: "Trek Fuel EX",
		Type:     domain.FullSuspension,
	}
}

func TestCreateFromManualSelection(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	s := newIntervalService(intervalRepo, &fakeHistoryRepo{}, &fakeRideRepo{})
	bike := testBike()
	lastService := time.Now().Add(-24 * time.Hour)

	created, skipped, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain, catalog.PartBrakePads}, lastService)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, created, 2)

	chain := created[0]
	assert.Equal(t, bike.BikeID, chain.BikeID)
	assert.Equal(t, catalog.PartChain, chain.Part)
	assert.Equal(t, 100.0, chain.IntervalHours)
	assert.True(t, chain.Notify)
	assert.Equal(t, lastService, chain.LastServiceDate)
	assert.Nil(t, chain.LastNotificationDate)
}

func TestCreateFromTemplatesSkipsUnknownIDs(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	s := newIntervalService(intervalRepo, &fakeHistoryRepo{}, &fakeRideRepo{})
	bike := testBike()

	created, skipped, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain, "frame_wax", catalog.PartTires}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, []string{"frame_wax"}, skipped)

	stored, err := intervalRepo.GetIntervalsByBikeID(context.Background(), bike.BikeID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestCreateFromDetection(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	s := newIntervalService(intervalRepo, &fakeHistoryRepo{}, &fakeRideRepo{})
	bike := testBike()

	detection := domain.DetectionResult{
		Manufacturer:       "trek",
		Model:              "fuel ex",
		Type:               domain.FullSuspension,
		Confidence:         domain.ConfidenceHigh,
		SuggestedIntervals: catalog.FullSuspensionIntervalSet(),
	}

	created, skipped, err := s.CreateFromDetection(context.Background(), bike, detection, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Len(t, created, len(catalog.FullSuspensionIntervalSet()))
}

func TestCreateRejectsFutureServiceDate(t *testing.T) {
	s := newIntervalService(newFakeIntervalRepo(), &fakeHistoryRepo{}, &fakeRideRepo{})

	_, _, err := s.CreateFromManualSelection(context.Background(), testBike(),
		[]string{catalog.PartChain}, time.Now().Add(24*time.Hour))
	assert.Error(t, err)
}

func TestUpdateIntervalNoOpWhenUnchanged(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	historyRepo := &fakeHistoryRepo{}
	s := newIntervalService(intervalRepo, historyRepo, &fakeRideRepo{})
	bike := testBike()

	created, _, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain}, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	stored := created[0]

	// Same values, different time of day on the same date: not a change.
	edit := *stored
	edit.LastServiceDate = time.Date(2026, 8, 20, 18, 30, 0, 0, time.UTC)

	result, err := s.UpdateInterval(context.Background(), &edit)
	require.NoError(t, err)
	assert.Equal(t, stored.LastServiceDate, result.LastServiceDate)
	assert.Zero(t, intervalRepo.updateCalls)
	assert.Empty(t, historyRepo.records)
}

func TestUpdateIntervalPersistsRealChanges(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	s := newIntervalService(intervalRepo, &fakeHistoryRepo{}, &fakeRideRepo{})
	bike := testBike()

	created, _, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain}, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	stored := created[0]

	edit := *stored
	edit.IntervalHours = 120
	// Time-of-day differs but the date is unchanged; the stored timestamp
	// must survive the save.
	edit.LastServiceDate = time.Date(2026, 8, 20, 23, 0, 0, 0, time.UTC)

	result, err := s.UpdateInterval(context.Background(), &edit)
	require.NoError(t, err)
	assert.Equal(t, 120.0, result.IntervalHours)
	assert.Equal(t, stored.LastServiceDate, result.LastServiceDate)
	assert.Equal(t, 1, intervalRepo.updateCalls)
}

func TestResetAndLog(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	historyRepo := &fakeHistoryRepo{}
	s := newIntervalService(intervalRepo, historyRepo, &fakeRideRepo{})
	bike := testBike()

	created, _, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain}, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	interval := created[0]

	sent := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	interval.LastNotificationDate = &sent
	_, err = intervalRepo.UpdateInterval(context.Background(), interval)
	require.NoError(t, err)

	newDate := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	updated, err := s.ResetAndLog(context.Background(), interval.ID, newDate, "new chain fitted")
	require.NoError(t, err)

	assert.Equal(t, newDate, updated.LastServiceDate)
	// The reminder throttle timestamp survives a reset.
	require.NotNil(t, updated.LastNotificationDate)
	assert.Equal(t, sent, *updated.LastNotificationDate)

	records, err := s.History(context.Background(), interval.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsReset)
	assert.Equal(t, newDate, records[0].Date)
	assert.Equal(t, "new chain fitted", records[0].Note)
}

func TestResetAndLogRejectsFutureDate(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	s := newIntervalService(intervalRepo, &fakeHistoryRepo{}, &fakeRideRepo{})
	bike := testBike()

	created, _, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = s.ResetAndLog(context.Background(), created[0].ID, time.Now().Add(48*time.Hour), "")
	assert.Error(t, err)
}

func TestDeleteIntervalCascadesHistory(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	historyRepo := &fakeHistoryRepo{}
	s := newIntervalService(intervalRepo, historyRepo, &fakeRideRepo{})
	bike := testBike()

	created, _, err := s.CreateFromManualSelection(context.Background(), bike,
		[]string{catalog.PartChain}, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	interval := created[0]

	_, err = s.ResetAndLog(context.Background(), interval.ID, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteInterval(context.Background(), interval.ID))

	_, err = s.GetInterval(context.Background(), interval.ID.String())
	assert.Error(t, err)
	assert.Empty(t, historyRepo.records)
}

func TestStatusForBike(t *testing.T) {
	intervalRepo := newFakeIntervalRepo()
	rideRepo := &fakeRideRepo{}
	s := newIntervalService(intervalRepo, &fakeHistoryRepo{}, rideRepo)
	bike := testBike()
	lastService := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	interval := &domain.ServiceInterval{
		ID:              uuid.New(),
		BikeID:          bike.BikeID,
		Part:            catalog.PartChain,
		IntervalHours:   10,
		Notify:          true,
		LastServiceDate: lastService,
	}
	_, err := intervalRepo.CreateInterval(context.Background(), interval)
	require.NoError(t, err)

	require.NoError(t, rideRepo.UpsertRides(context.Background(), []domain.RideRecord{
		ride(bike.BikeID, lastService.Add(24*time.Hour), 3),
	}))

	statuses, err := s.StatusForBike(context.Background(), bike.BikeID)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.InDelta(t, 7.0, statuses[0].HoursUntilService, 1e-9)
	assert.Equal(t, domain.UrgencyWarning, statuses[0].Urgency)
}

func TestHasUnsavedChanges(t *testing.T) {
	base := IntervalSnapshot{
		Part:            catalog.PartChain,
		IntervalHours:   100,
		Notify:          true,
		BikeID:          uuid.New(),
		LastServiceDate: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}

	t.Run("identical", func(t *testing.T) {
		assert.False(t, HasUnsavedChanges(base, base))
	})

	t.Run("same day different time", func(t *testing.T) {
		edit := base
		edit.LastServiceDate = time.Date(2026, 8, 20, 22, 0, 0, 0, time.UTC)
		assert.False(t, HasUnsavedChanges(base, edit))
	})

	t.Run("different day", func(t *testing.T) {
		edit := base
		edit.LastServiceDate = time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
		assert.True(t, HasUnsavedChanges(base, edit))
	})

	t.Run("hours changed", func(t *testing.T) {
		edit := base
		edit.IntervalHours = 120
		assert.True(t, HasUnsavedChanges(base, edit))
	})

	t.Run("notify toggled", func(t *testing.T) {
		edit := base
		edit.Notify = false
		assert.True(t, HasUnsavedChanges(base, edit))
	})
}
