package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
)

const (
	// UserIDContextKey is a gin context key for the calling user identifier.
	UserIDContextKey = "userID"
	// UserIDHeader carries the caller identity. Verification of the
	// identity itself happens upstream at the platform gateway.
	UserIDHeader = "X-User-ID"
)

// IdentityRequired ensures the request names a caller before reaching the
// handler.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// AdminGate checks that a user id belongs to an admin account.
type AdminGate interface {
	EnsureAdmin(ctx context.Context, userID string) error
}

// AdminRequired ensures the calling user carries the admin role. It must be
// mounted after IdentityRequired.
func AdminRequired(gate AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(UserIDContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		err := gate.EnsureAdmin(c.Request.Context(), userID.(string))
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, domainErrors.ErrForbidden):
			c.AbortWithStatus(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.AbortWithStatus(http.StatusUnauthorized)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}
