package services

import (
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
)

// Fixed engine constants. These mirror the product behavior and have no
// configuration surface.
const (
	// NotificationThrottle is the minimum gap between two reminders for
	// the same interval.
	NotificationThrottle = 7 * 24 * time.Hour

	// Hours-until-service thresholds for the urgency classification.
	UrgentThresholdHours  = 5.0
	WarningThresholdHours = 10.0

	// Used-fraction thresholds for the compact percentage display.
	UsageWarnFraction = 0.9
	UsageDueFraction  = 1.0
)

// RideTimeSince sums moving time in hours over the given bike's rides
// started at or after since. The ride slice is trusted to already be the
// ride set for the bike's owner; filtering of non-ride activities happens
// at ingestion.
func RideTimeSince(bikeID uuid.UUID, since time.Time, rides []domain.RideRecord) float64 {
	var seconds int
	for _, r := range rides {
		if r.BikeID == bikeID && !r.StartTime.Before(since) {
			seconds += r.MovingTimeSeconds
		}
	}
	return float64(seconds) / 3600.0
}

// HoursUsed is the ride time accumulated since the interval's last
// service.
func HoursUsed(interval *domain.ServiceInterval, rides []domain.RideRecord) float64 {
	return RideTimeSince(interval.BikeID, interval.LastServiceDate, rides)
}

// HoursUntilService may be negative when the part is overdue; callers use
// sign and magnitude for display and for the notification decision.
func HoursUntilService(interval *domain.ServiceInterval, rides []domain.RideRecord) float64 {
	return interval.IntervalHours - HoursUsed(interval, rides)
}

// UrgencyFor classifies hours-until-service into the display urgency.
func UrgencyFor(hoursUntilService float64) domain.Urgency {
	switch {
	case hoursUntilService <= 0:
		return domain.UrgencyOverdue
	case hoursUntilService <= UrgentThresholdHours:
		return domain.UrgencyUrgent
	case hoursUntilService <= WarningThresholdHours:
		return domain.UrgencyWarning
	default:
		return domain.UrgencyGood
	}
}

// UsageFraction is hours used over interval length. IntervalHours is
// strictly positive by construction.
func UsageFraction(interval *domain.ServiceInterval, rides []domain.RideRecord) float64 {
	return HoursUsed(interval, rides) / interval.IntervalHours
}

// UsageStatusFor is the independent percentage-based classification used
// by compact displays.
func UsageStatusFor(fraction float64) domain.UsageStatus {
	switch {
	case fraction >= UsageDueFraction:
		return domain.UsageDue
	case fraction >= UsageWarnFraction:
		return domain.UsageWarn
	default:
		return domain.UsageOK
	}
}

// IsNotificationDue reports whether a reminder should go out now: the
// interval wants reminders, the part is overdue, and no reminder was sent
// within the throttle window.
func IsNotificationDue(interval *domain.ServiceInterval, rides []domain.RideRecord, now time.Time) bool {
	if !interval.Notify {
		return false
	}
	if HoursUntilService(interval, rides) > 0 {
		return false
	}
	if interval.LastNotificationDate == nil {
		return true
	}
	return now.Sub(*interval.LastNotificationDate) >= NotificationThrottle
}

// RecordNotificationSent stamps the throttle window. Call only after the
// notification channel has been invoked; an attempted send counts as
// sent.
func RecordNotificationSent(interval *domain.ServiceInterval, now time.Time) {
	sent := now
	interval.LastNotificationDate = &sent
}

// ResetInterval logs a service. The throttle timestamp is deliberately
// kept: a freshly serviced part has positive hours remaining, so
// IsNotificationDue is false regardless until usage accumulates again.
func ResetInterval(interval *domain.ServiceInterval, newServiceDate time.Time) {
	interval.LastServiceDate = newServiceDate
}

// SameCalendarDay compares two timestamps at day granularity, in the
// first timestamp's location. Used for unsaved-change detection: the
// clients only let users pick a date, never a time of day.
func SameCalendarDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
