package domain

import (
	"time"

	"github.com/google/uuid"
)

// RideRecord is a single synced activity. BikeID is resolved from the
// fitness service's gear id at ingestion time; rides whose gear does not
// map to a known bike are not stored.
type RideRecord struct {
	RideID            int64     `json:"ride_id"`
	BikeID            uuid.UUID `json:"bike_id"`
	GearID            string    `json:"gear_id"`
	MovingTimeSeconds int       `json:"moving_time_seconds"`
	StartTime         time.Time `json:"start_time"`
	ActivityType      string    `json:"activity_type"`
	DistanceMeters    float64   `json:"distance_meters"`
}
