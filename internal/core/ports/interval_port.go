package ports

import (
	"context"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
)

type IntervalRepository interface {
	CreateInterval(ctx context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error)
	GetIntervalByID(ctx context.Context, intervalID uuid.UUID) (*domain.ServiceInterval, error)
	GetIntervalsByBikeID(ctx context.Context, bikeID uuid.UUID) ([]*domain.ServiceInterval, error)
	ListIntervals(ctx context.Context) ([]*domain.ServiceInterval, error)
	UpdateInterval(ctx context.Context, interval *domain.ServiceInterval) (*domain.ServiceInterval, error)
	DeleteInterval(ctx context.Context, intervalID uuid.UUID) error
}

type HistoryRepository interface {
	AppendRecord(ctx context.Context, record *domain.ServiceRecord) (*domain.ServiceRecord, error)
	ListByIntervalID(ctx context.Context, intervalID uuid.UUID) ([]domain.ServiceRecord, error)
	DeleteByIntervalID(ctx context.Context, intervalID uuid.UUID) error
}
