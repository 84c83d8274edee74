package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type IntervalRepository struct {
	db *sql.DB
}

func NewIntervalRepository(db *sql.DB) *IntervalRepository {
	return &IntervalRepository{
		db,
	}
}

func (r *IntervalRepository) CreateInterval(ctx context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error) {
	query := `INSERT INTO service_intervals (id, bike_id, part, interval_hours, notify, last_service_date, last_notification_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, interval.ID, interval.BikeID, interval.Part,
		interval.IntervalHours, interval.Notify, interval.LastServiceDate, interval.LastNotificationDate).Scan(
		&interval.ID,
		&interval.CreatedAt,
		&interval.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				return nil, fmt.Errorf("bike does not exist")
			case "23514":
				return nil, fmt.Errorf("interval hours must be positive")
			default:
				return nil, err
			}
		}
		return nil, err
	}
	return interval, nil
}

func (r *IntervalRepository) GetIntervalByID(ctx context.Context, intervalID uuid.UUID) (*domain.ServiceInterval, error) {
	query := `SELECT id, bike_id, part, interval_hours, notify, last_service_date, last_notification_date, created_at, updated_at
              FROM service_intervals WHERE id = $1`

	interval := &domain.ServiceInterval{}
	err := r.db.QueryRowContext(ctx, query, intervalID).Scan(
		&interval.ID,
		&interval.BikeID,
		&interval.Part,
		&interval.IntervalHours,
		&interval.Notify,
		&interval.LastServiceDate,
		&interval.LastNotificationDate,
		&interval.CreatedAt,
		&interval.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("interval not found")
	}
	if err != nil {
		return nil, err
	}

	return interval, nil
}

func (r *IntervalRepository) GetIntervalsByBikeID(ctx context.Context, bikeID uuid.UUID) ([]*domain.ServiceInterval, error) {
	query := `SELECT id, bike_id, part, interval_hours, notify, last_service_date, last_notification_date, created_at, updated_at
              FROM service_intervals WHERE bike_id = $1 ORDER BY created_at`

	return r.queryIntervals(ctx, query, bikeID)
}

func (r *IntervalRepository) ListIntervals(ctx context.Context) ([]*domain.ServiceInterval, error) {
	query := `SELECT id, bike_id, part, interval_hours, notify, last_service_date, last_notification_date, created_at, updated_at
              FROM service_intervals ORDER BY bike_id, created_at`

	return r.queryIntervals(ctx, query)
}

func (r *IntervalRepository) queryIntervals(ctx context.Context, query string, args ...interface{}) ([]*domain.ServiceInterval, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []*domain.ServiceInterval

	for rows.Next() {
		interval := &domain.ServiceInterval{}
		err := rows.Scan(
			&interval.ID,
			&interval.BikeID,
			&interval.Part,
			&interval.IntervalHours,
			&interval.Notify,
			&interval.LastServiceDate,
			&interval.LastNotificationDate,
			&interval.CreatedAt,
			&interval.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return intervals, nil
}

func (r *IntervalRepository) UpdateInterval(ctx context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error) {
	query := `UPDATE service_intervals
		SET
			part = $1,
			interval_hours = $2,
			notify = $3,
			last_service_date = $4,
			last_notification_date = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING id, bike_id, part, interval_hours, notify, last_service_date, last_notification_date, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		interval.Part,
		interval.IntervalHours,
		interval.Notify,
		interval.LastServiceDate,
		interval.LastNotificationDate,
		interval.ID,
	).Scan(
		&interval.ID,
		&interval.BikeID,
		&interval.Part,
		&interval.IntervalHours,
		&interval.Notify,
		&interval.LastServiceDate,
		&interval.LastNotificationDate,
		&interval.CreatedAt,
		&interval.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("interval not found")
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return nil, fmt.Errorf("interval hours must be positive")
		}
		return nil, fmt.Errorf("error updating interval: %w", err)
	}

	return interval, nil
}

func (r *IntervalRepository) DeleteInterval(ctx context.Context, intervalID uuid.UUID) error {
	query := `DELETE FROM service_intervals WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, intervalID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("interval not found")
	}

	return nil
}
