package ports

import "github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

type TokenService interface {
	VerifyToken(token string) (*domain.TokenPayload, error)
}
