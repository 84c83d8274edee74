package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
)

type RideRepository struct {
	db *sql.DB
}

func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{
		db,
	}
}

func (r *RideRepository) UpsertRides(ctx context.Context, rides []domain.RideRecord) error {
	query := `INSERT INTO rides (ride_id, bike_id, gear_id, moving_time_seconds, start_time, activity_type, distance_meters)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (ride_id) DO UPDATE SET
		bike_id = EXCLUDED.bike_id,
		gear_id = EXCLUDED.gear_id,
		moving_time_seconds = EXCLUDED.moving_time_seconds,
		start_time = EXCLUDED.start_time,
		activity_type = EXCLUDED.activity_type,
		distance_meters = EXCLUDED.distance_meters`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ride := range rides {
		if _, err := tx.ExecContext(ctx, query, ride.RideID, ride.BikeID, ride.GearID,
			ride.MovingTimeSeconds, ride.StartTime, ride.ActivityType, ride.DistanceMeters); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *RideRepository) GetRidesByBikeID(ctx context.Context, bikeID uuid.UUID) ([]domain.RideRecord, error) {
	query := `SELECT ride_id, bike_id, gear_id, moving_time_seconds, start_time, activity_type, distance_meters
              FROM rides WHERE bike_id = $1 ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, bikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []domain.RideRecord

	for rows.Next() {
		var ride domain.RideRecord
		err := rows.Scan(
			&ride.RideID,
			&ride.BikeID,
			&ride.GearID,
			&ride.MovingTimeSeconds,
			&ride.StartTime,
			&ride.ActivityType,
			&ride.DistanceMeters,
		)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rides, nil
}

func (r *RideRepository) LatestRideTime(ctx context.Context) (time.Time, error) {
	query := `SELECT COALESCE(MAX(start_time), 'epoch'::timestamptz) FROM rides`

	var latest time.Time
	if err := r.db.QueryRowContext(ctx, query).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	return latest, nil
}

func (r *RideRepository) DeleteRidesByBikeID(ctx context.Context, bikeID uuid.UUID) error {
	query := `DELETE FROM rides WHERE bike_id = $1`

	_, err := r.db.ExecContext(ctx, query, bikeID)
	return err
}
