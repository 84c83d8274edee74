package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceInterval tracks one wear part on one bike, measured in hours of
// ride time between services.
type ServiceInterval struct {
	ID                   uuid.UUID  `json:"id"`
	BikeID               uuid.UUID  `json:"bike_id" validate:"required"`
	Part                 string     `json:"part" validate:"required,max=100"`
	IntervalHours        float64    `json:"interval_hours" validate:"required,gt=0"`
	Notify               bool       `json:"notify"`
	LastServiceDate      time.Time  `json:"last_service_date" validate:"required"`
	LastNotificationDate *time.Time `json:"last_notification_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type Urgency string

const (
	UrgencyGood    Urgency = "good"
	UrgencyWarning Urgency = "warning"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyOverdue Urgency = "overdue"
)

// UsageStatus is the compact percentage-based classification used by
// dashboard style displays, independent of Urgency.
type UsageStatus string

const (
	UsageOK   UsageStatus = "ok"
	UsageWarn UsageStatus = "warn"
	UsageDue  UsageStatus = "due"
)

// ServiceRecord is an append-only history entry for an interval. Records
// are never mutated; they are removed only when the owning interval is
// deleted.
type ServiceRecord struct {
	ID         uuid.UUID `json:"id"`
	IntervalID uuid.UUID `json:"interval_id"`
	Date       time.Time `json:"date"`
	IsReset    bool      `json:"is_reset"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
