package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/server/http/middleware"
)

// CurrentUserID extracts the calling user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrUnknownAction):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrActionOnCooldown):
		c.Status(http.StatusTooManyRequests)
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		c.Status(http.StatusPaymentRequired)
	case errors.Is(err, domainErrors.ErrAlreadyProcessed):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidCurrency),
		errors.Is(err, domainErrors.ErrEmptyWalletAddress),
		errors.Is(err, domainErrors.ErrBelowMinimumWithdrawal),
		errors.Is(err, domainErrors.ErrInvalidStatus):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
