package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) *BikeRepository {
	return &BikeRepository{
		db,
	}
}

func (r *BikeRepository) CreateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	query := `INSERT INTO bikes (user_id, bike_id, bike_name, type, manufacturer, model, strava_gear_id, distance_km)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING bike_id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, bike.UserID, bike.BikeID, bike.BikeName, bike.Type,
		bike.Manufacturer, bike.Model, bike.StravaGearID, bike.DistanceKM).Scan(
		&bike.BikeID,
		&bike.CreatedAt,
		&bike.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23502":
				return nil, fmt.Errorf("required field is missing")
			case "23505":
				return nil, fmt.Errorf("bike already exists")
			default:
				return nil, err
			}
		}
		return nil, err
	}
	return bike, nil
}

func (r *BikeRepository) GetBikeByID(ctx context.Context, bikeID uuid.UUID) (*domain.Bike, error) {
	query := `SELECT user_id, bike_id, bike_name, type, manufacturer, model, strava_gear_id, distance_km, created_at, updated_at
              FROM bikes WHERE bike_id = $1`

	bike := &domain.Bike{}
	err := r.db.QueryRowContext(ctx, query, bikeID).Scan(
		&bike.UserID,
		&bike.BikeID,
		&bike.BikeName,
		&bike.Type,
		&bike.Manufacturer,
		&bike.Model,
		&bike.StravaGearID,
		&bike.DistanceKM,
		&bike.CreatedAt,
		&bike.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bike not found")
	}
	if err != nil {
		return nil, err
	}

	return bike, nil
}

func (r *BikeRepository) GetBikeByGearID(ctx context.Context, gearID string) (*domain.Bike, error) {
	query := `SELECT user_id, bike_id, bike_name, type, manufacturer, model, strava_gear_id, distance_km, created_at, updated_at
              FROM bikes WHERE strava_gear_id = $1`

	bike := &domain.Bike{}
	err := r.db.QueryRowContext(ctx, query, gearID).Scan(
		&bike.UserID,
		&bike.BikeID,
		&bike.BikeName,
		&bike.Type,
		&bike.Manufacturer,
		&bike.Model,
		&bike.StravaGearID,
		&bike.DistanceKM,
		&bike.CreatedAt,
		&bike.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bike not found")
	}
	if err != nil {
		return nil, err
	}

	return bike, nil
}

func (r *BikeRepository) GetBikesByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Bike, error) {
	query := `SELECT user_id, bike_id, bike_name, type, manufacturer, model, strava_gear_id, distance_km, created_at, updated_at
              FROM bikes WHERE user_id = $1`

	return r.queryBikes(ctx, query, userID)
}

func (r *BikeRepository) ListBikes(ctx context.Context) ([]*domain.Bike, error) {
	query := `SELECT user_id, bike_id, bike_name, type, manufacturer, model, strava_gear_id, distance_km, created_at, updated_at
              FROM bikes`

	return r.queryBikes(ctx, query)
}

func (r *BikeRepository) queryBikes(ctx context.Context, query string, args ...interface{}) ([]*domain.Bike, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []*domain.Bike

	for rows.Next() {
		bike := &domain.Bike{}
		err := rows.Scan(
			&bike.UserID,
			&bike.BikeID,
			&bike.BikeName,
			&bike.Type,
			&bike.Manufacturer,
			&bike.Model,
			&bike.StravaGearID,
			&bike.DistanceKM,
			&bike.CreatedAt,
			&bike.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		bikes = append(bikes, bike)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bikes, nil
}

func (r *BikeRepository) UpdateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	query := `UPDATE bikes
		SET
			bike_name = COALESCE(NULLIF($1, ''), bike_name),
			type = COALESCE(NULLIF($2, ''), type),
			manufacturer = COALESCE(NULLIF($3, ''), manufacturer),
			model = COALESCE(NULLIF($4, ''), model),
			strava_gear_id = COALESCE(NULLIF($5, ''), strava_gear_id),
			distance_km = COALESCE(NULLIF($6, 0.0), distance_km),
			updated_at = CURRENT_TIMESTAMP
		WHERE bike_id = $7
		RETURNING user_id, bike_id, bike_name, type, manufacturer, model, strava_gear_id, distance_km, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		bike.BikeName,
		bike.Type,
		bike.Manufacturer,
		bike.Model,
		bike.StravaGearID,
		bike.DistanceKM,
		bike.BikeID,
	).Scan(
		&bike.UserID,
		&bike.BikeID,
		&bike.BikeName,
		&bike.Type,
		&bike.Manufacturer,
		&bike.Model,
		&bike.StravaGearID,
		&bike.DistanceKM,
		&bike.CreatedAt,
		&bike.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bike not found")
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23502" {
			return nil, fmt.Errorf("required field is missing")
		}
		return nil, fmt.Errorf("error updating bike: %w", err)
	}

	return bike, nil
}

func (r *BikeRepository) DeleteBike(ctx context.Context, bikeID uuid.UUID) error {
	query := `DELETE FROM bikes WHERE bike_id = $1`

	result, err := r.db.ExecContext(ctx, query, bikeID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("bike not found")
	}

	return nil
}
