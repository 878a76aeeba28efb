package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/server/http/dto"
)

// ConversionHandler manages point conversion and reward packs.
type ConversionHandler struct {
	facade ConversionFacade
}

// NewConversionHandler constructs ConversionHandler.
func NewConversionHandler(facade ConversionFacade) *ConversionHandler {
	return &ConversionHandler{facade: facade}
}

// Convert handles POST /api/user/convert.
func (h *ConversionHandler) Convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.ConvertPoints(c.Request.Context(), CurrentUserID(c), req.Points)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Packs handles GET /api/packs.
func (h *ConversionHandler) Packs(c *gin.Context) {
	packs := h.facade.Packs()
	resp := make([]dto.PackResponse, 0, len(packs))
	for _, p := range packs {
		resp = append(resp, dto.NewPackResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// ClaimPack handles POST /api/packs/:id/claim.
func (h *ConversionHandler) ClaimPack(c *gin.Context) {
	packID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.ClaimPack(c.Request.Context(), CurrentUserID(c), packID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
