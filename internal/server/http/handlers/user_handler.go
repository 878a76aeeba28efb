package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/server/http/dto"
)

// UserHandler manages profile endpoints.
type UserHandler struct {
	facade ProfileFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade ProfileFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Ensure handles POST /api/user. It registers the caller on first contact
// and refreshes display fields on every later call.
func (h *UserHandler) Ensure(c *gin.Context) {
	var req dto.EnsureUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.UserID != CurrentUserID(c) {
		c.Status(http.StatusForbidden)
		return
	}

	user, err := h.facade.EnsureUser(c.Request.Context(), model.Profile{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Me handles GET /api/user.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.facade.User(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update handles PATCH /api/user. Only fields present in the body change.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.UpdateUser(c.Request.Context(), CurrentUserID(c), req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
