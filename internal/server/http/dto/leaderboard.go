package dto

import "github.com/minedash/minedash/internal/domain/model"

// LeaderboardEntryResponse is one ranked row.
type LeaderboardEntryResponse struct {
	Rank      int     `json:"rank"`
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	Avatar    string  `json:"avatar,omitempty"`
	Points    int64   `json:"points"`
	VIPLevel  int     `json:"vipLevel"`
	DayStreak int     `json:"dayStreak"`
	TON       float64 `json:"ton"`
}

// NewLeaderboardResponse maps ranked entries to their wire shape.
func NewLeaderboardResponse(entries []model.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, 0, len(entries))
	for i, e := range entries {
		out = append(out, LeaderboardEntryResponse{
			Rank:      i + 1,
			UserID:    e.UserID,
			Username:  e.Username,
			Avatar:    e.Avatar,
			Points:    e.Points,
			VIPLevel:  e.VIPLevel,
			DayStreak: e.DayStreak,
			TON:       e.TON,
		})
	}
	return out
}
