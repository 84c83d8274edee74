package ports

import (
	"context"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/google/uuid"
)

type RideRepository interface {
	UpsertRides(ctx context.Context, rides []domain.RideRecord) error
	GetRidesByBikeID(ctx context.Context, bikeID uuid.UUID) ([]domain.RideRecord, error)
	LatestRideTime(ctx context.Context) (time.Time, error)
	DeleteRidesByBikeID(ctx context.Context, bikeID uuid.UUID) error
}

// RideSource is the fitness-service client. Returned records carry the
// raw gear id; the sync service resolves gear ids to bikes and discards
// activities that are not rides on a known bike.
type RideSource interface {
	FetchRidesSince(ctx context.Context, since time.Time) ([]domain.RideRecord, error)
}
