package ports

import (
	"context"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
)

type BikeRepository interface {
	CreateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error)
	GetBikeByID(ctx context.Context, bikeID uuid.UUID) (*domain.Bike, error)
	GetBikeByGearID(ctx context.Context, gearID string) (*domain.Bike, error)
	GetBikesByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Bike, error)
	ListBikes(ctx context.Context) ([]*domain.Bike, error)
	UpdateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error)
	DeleteBike(ctx context.Context, bikeID uuid.UUID) error
}
