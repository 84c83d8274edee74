package domain

import (
	"time"

	"github.com/google/uuid"
)

type Bike struct {
	UserID       uuid.UUID `json:"user_id"`
	BikeID       uuid.UUID `json:"bike_id"`
	BikeName     string    `json:"bike_name" validate:"required,max=200"`
	Type         BikeType  `json:"type"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	Model        string    `json:"model,omitempty"`
	StravaGearID string    `json:"strava_gear_id,omitempty"`
	DistanceKM   float64   `json:"distance_km"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BikeType string

const (
	FullSuspension BikeType = "full_suspension"
	Hardtail       BikeType = "hardtail"
	Rigid          BikeType = "rigid"
	Gravel         BikeType = "gravel"
	UnknownType    BikeType = "unknown"
)

// ParseBikeType maps a stored type string to a BikeType. Unrecognized
// strings map to UnknownType rather than erroring.
func ParseBikeType(s string) BikeType {
	switch BikeType(s) {
	case FullSuspension, Hardtail, Rigid, Gravel:
		return BikeType(s)
	default:
		return UnknownType
	}
}
