package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{
		db,
	}
}

func (r *HistoryRepository) AppendRecord(ctx context.Context, record *domain.ServiceRecord) (*domain.ServiceRecord, error) {
	query := `INSERT INTO service_history (id, interval_id, date, is_reset, note)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, record.ID, record.IntervalID, record.Date, record.IsReset, record.Note).Scan(
		&record.ID,
		&record.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, fmt.Errorf("interval does not exist")
		}
		return nil, err
	}
	return record, nil
}

func (r *HistoryRepository) ListByIntervalID(ctx context.Context, intervalID uuid.UUID) ([]domain.ServiceRecord, error) {
	query := `SELECT id, interval_id, date, is_reset, note, created_at
              FROM service_history WHERE interval_id = $1 ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, intervalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ServiceRecord

	for rows.Next() {
		var record domain.ServiceRecord
		err := rows.Scan(
			&record.ID,
			&record.IntervalID,
			&record.Date,
			&record.IsReset,
			&record.Note,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *HistoryRepository) DeleteByIntervalID(ctx context.Context, intervalID uuid.UUID) error {
	query := `DELETE FROM service_history WHERE interval_id = $1`

	_, err := r.db.ExecContext(ctx, query, intervalID)
	return err
}
