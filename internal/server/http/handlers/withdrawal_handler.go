package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/server/http/dto"
)

// WithdrawalHandler manages the user-facing side of the withdrawal ledger.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Create handles POST /api/user/withdrawals.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	w, err := h.facade.RequestWithdrawal(c.Request.Context(), CurrentUserID(c),
		model.Currency(req.Currency), req.Amount, req.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewWithdrawalResponse(w))
}

// List handles GET /api/user/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	withdrawals, err := h.facade.WithdrawalsForUser(c.Request.Context(), CurrentUserID(c))
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
