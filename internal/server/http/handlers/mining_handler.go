package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/server/http/dto"
)

// MiningHandler manages the earn loop endpoints.
type MiningHandler struct {
	facade MiningFacade
}

// NewMiningHandler constructs MiningHandler.
func NewMiningHandler(facade MiningFacade) *MiningHandler {
	return &MiningHandler{facade: facade}
}

// Actions handles GET /api/actions.
func (h *MiningHandler) Actions(c *gin.Context) {
	specs := h.facade.Actions()
	resp := make([]dto.ActionResponse, 0, len(specs))
	for _, spec := range specs {
		resp = append(resp, dto.NewActionResponse(spec))
	}
	c.JSON(http.StatusOK, resp)
}

// Complete handles POST /api/actions/:id/complete.
func (h *MiningHandler) Complete(c *gin.Context) {
	res, err := h.facade.CompleteAction(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompleteActionResponse(res))
}

// Available handles GET /api/actions/:id/available.
func (h *MiningHandler) Available(c *gin.Context) {
	actionID := c.Param("id")
	available, err := h.facade.IsActionAvailable(CurrentUserID(c), actionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{ActionID: actionID, Available: available})
}

// Cooldowns handles GET /api/user/cooldowns.
func (h *MiningHandler) Cooldowns(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CooldownsResponse{Cooldowns: h.facade.Cooldowns(CurrentUserID(c))})
}

// ClaimDaily handles POST /api/user/daily-claim.
func (h *MiningHandler) ClaimDaily(c *gin.Context) {
	res, err := h.facade.ClaimDaily(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompleteActionResponse(res))
}
