package http

import (
	"testing"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	service := NewJWTTokenService(testSecret, nopLogger{})
	id := uuid.New()
	userID := uuid.New()

	signed := signToken(t, testSecret, jwt.MapClaims{
		"id":      id.String(),
		"user_id": userID.String(),
		"role":    string(domain.AppUser),
	})

	payload, err := service.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, id, payload.ID)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, domain.AppUser, payload.Role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	service := NewJWTTokenService(testSecret, nopLogger{})

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"id":      uuid.New().String(),
		"user_id": uuid.New().String(),
		"role":    string(domain.AppUser),
	})

	_, err := service.VerifyToken(signed)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsBadClaims(t *testing.T) {
	service := NewJWTTokenService(testSecret, nopLogger{})

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			name:   "missing id",
			claims: jwt.MapClaims{"user_id": uuid.New().String(), "role": string(domain.AppUser)},
		},
		{
			name:   "id not a uuid",
			claims: jwt.MapClaims{"id": "42", "user_id": uuid.New().String(), "role": string(domain.AppUser)},
		},
		{
			name:   "missing user_id",
			claims: jwt.MapClaims{"id": uuid.New().String(), "role": string(domain.AppUser)},
		},
		{
			name:   "unknown role",
			claims: jwt.MapClaims{"id": uuid.New().String(), "user_id": uuid.New().String(), "role": "superuser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(signToken(t, testSecret, tt.claims))
			assert.Error(t, err)
		})
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	service := NewJWTTokenService(testSecret, nopLogger{})

	_, err := service.VerifyToken("not.a.token")
	assert.Error(t, err)
}
