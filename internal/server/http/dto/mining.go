package dto

import (
	"github.com/minedash/minedash/internal/reward"
	"github.com/minedash/minedash/internal/usecase"
)

// ActionResponse is one row of the earn table.
type ActionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PointReward int64  `json:"pointReward"`
	ExpReward   int64  `json:"expReward"`
	CooldownMS  int64  `json:"cooldownMs"`
	Randomized  bool   `json:"randomized"`
}

// NewActionResponse maps an action spec to its wire shape.
func NewActionResponse(spec reward.ActionSpec) ActionResponse {
	return ActionResponse{
		ID:          spec.ID,
		Name:        spec.Name,
		PointReward: spec.PointReward,
		ExpReward:   spec.ExpReward,
		CooldownMS:  spec.Cooldown.Milliseconds(),
		Randomized:  spec.Randomized,
	}
}

// CompleteActionResponse reports the settled outcome of one action.
type CompleteActionResponse struct {
	User          UserResponse `json:"user"`
	PointsAwarded int64        `json:"pointsAwarded"`
	ExpAwarded    int64        `json:"expAwarded"`
	LeveledUp     bool         `json:"leveledUp"`
	NewLevel      int          `json:"newLevel"`
	DayStreak     int          `json:"dayStreak,omitempty"`
	PlaysToday    int          `json:"playsToday"`
}

// NewCompleteActionResponse maps a mining result to its wire shape.
func NewCompleteActionResponse(res *usecase.MiningResult) CompleteActionResponse {
	return CompleteActionResponse{
		User:          NewUserResponse(res.User),
		PointsAwarded: res.Outcome.PointsAwarded,
		ExpAwarded:    res.Outcome.ExpAwarded,
		LeveledUp:     res.Outcome.LeveledUp,
		NewLevel:      res.Outcome.NewLevel,
		DayStreak:     res.Outcome.NewStreak,
		PlaysToday:    res.PlaysToday,
	}
}

// AvailabilityResponse answers "can this action start now".
type AvailabilityResponse struct {
	ActionID  string `json:"actionId"`
	Available bool   `json:"available"`
}

// CooldownsResponse maps action ids to cooldown expiry in Unix milliseconds.
type CooldownsResponse struct {
	Cooldowns map[string]int64 `json:"cooldowns"`
}
