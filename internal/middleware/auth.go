package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"watog/internal/logger"
	"watog/internal/models"
	"watog/internal/services"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "user"

// Authenticator resolves a bearer token to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired rejects requests without a valid token for a live account
// and stores the account under CurrentUserKey.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromHeader(c.GetHeader("Authorization"))

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(CurrentUserKey, user)
			c.Next()
		case errors.Is(err, services.ErrInvalidToken):
			abort(c, http.StatusUnauthorized, "Invalid Authorization")
		case errors.Is(err, services.ErrInvalidUser):
			abort(c, http.StatusUnauthorized, "Invalid User")
		default:
			logger.Log.Errorw("authenticate failed", "err", err)
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "internal_error")
		}
	}
}

// TokenFromHeader accepts both a raw token and "Bearer <token>".
func TokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// CurrentUser returns the account set by AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"status": false, "error": message})
}
