package http

import (
	"net/http"
	"strings"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const authPayloadKey = "authorization_payload"

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

// AuthMiddleware verifies the bearer token and stores the payload in the
// request context.
func AuthMiddleware(tokenService ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header missing")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		payload, err := tokenService.VerifyToken(parts[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(authPayloadKey, payload)
		c.Next()
	}
}
