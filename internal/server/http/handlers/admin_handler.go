package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/server/http/dto"
)

// AdminHandler manages the administrative endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.facade.AdminLogin(req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.AdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.facade.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddPoints handles POST /api/admin/users/:id/points.
func (h *AdminHandler) AddPoints(c *gin.Context) {
	var req dto.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.AddPoints(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SetBalance handles PUT /api/admin/users/:id/balance.
func (h *AdminHandler) SetBalance(c *gin.Context) {
	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SetBalance(c.Request.Context(), c.Param("id"), model.Currency(req.Currency), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Withdrawals handles GET /api/admin/withdrawals?status=pending.
func (h *AdminHandler) Withdrawals(c *gin.Context) {
	var status *model.WithdrawalStatus
	if raw := c.Query("status"); raw != "" {
		s := model.WithdrawalStatus(raw)
		status = &s
	}

	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		resp = append(resp, dto.NewWithdrawalResponse(&withdrawals[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ResolveWithdrawal handles POST /api/admin/withdrawals/:id.
func (h *AdminHandler) ResolveWithdrawal(c *gin.Context) {
	var req dto.ResolveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	w, err := h.facade.ResolveWithdrawal(c.Request.Context(), c.Param("id"),
		model.WithdrawalStatus(req.Status), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalResponse(w))
}
