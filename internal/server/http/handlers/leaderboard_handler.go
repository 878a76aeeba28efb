package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/server/http/dto"
)

// LeaderboardHandler serves the ranked user list.
type LeaderboardHandler struct {
	facade LeaderboardFacade
}

// NewLeaderboardHandler constructs LeaderboardHandler.
func NewLeaderboardHandler(facade LeaderboardFacade) *LeaderboardHandler {
	return &LeaderboardHandler{facade: facade}
}

// List handles GET /api/leaderboard?metric=points&limit=10.
func (h *LeaderboardHandler) List(c *gin.Context) {
	metric := model.LeaderboardMetric(c.DefaultQuery("metric", string(model.LeaderboardPoints)))

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.facade.Leaderboard(c.Request.Context(), metric, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLeaderboardResponse(entries))
}
