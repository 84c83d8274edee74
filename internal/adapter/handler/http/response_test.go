package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func authTestRouter(service *JWTTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(service), func(c *gin.Context) {
		payload, ok := getAuthPayload(c, authPayloadKey)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payload missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": payload.UserID.String()})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidBearer(t *testing.T) {
	service := NewJWTTokenService(testSecret, nopLogger{})
	router := authTestRouter(service)

	signed := signToken(t, testSecret, jwt.MapClaims{
		"id":      uuid.New().String(),
		"user_id": uuid.New().String(),
		"role":    string(domain.AppUser),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	service := NewJWTTokenService(testSecret, nopLogger{})
	router := authTestRouter(service)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "Token abc"},
		{name: "malformed token", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}
