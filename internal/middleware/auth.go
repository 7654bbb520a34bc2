package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"calendar-be/internal/models"
)

const userIDKey = "user_id"

// TokenValidator verifies an access token and returns the user it was issued to
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// AuthMiddleware rejects requests without a valid bearer token before any
// handler runs. On success the user id is stored in the gin context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.MessageResponse{
				Msg: "Missing Authorization Header",
			})
			return
		}

		userID, err := tokens.ValidateToken(tokenString)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.MessageResponse{
				Msg: "Invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user stored by AuthMiddleware
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// bearerToken accepts both "Bearer <token>" and a bare "<token>"
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	if len(parts) == 2 {
		return ""
	}
	return header
}
