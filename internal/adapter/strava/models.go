package strava

import "time"

// Activity is the slice of a Strava activity this service consumes.
type Activity struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	SportType  string    `json:"sport_type"`
	GearID     string    `json:"gear_id"`
	StartDate  time.Time `json:"start_date"`
	Distance   float64   `json:"distance"`    // meters
	MovingTime int       `json:"moving_time"` // seconds
}
