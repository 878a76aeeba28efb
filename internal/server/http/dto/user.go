package dto

import (
	"time"

	"github.com/minedash/minedash/internal/domain/model"
)

// BalanceResponse is the per-currency wallet state.
type BalanceResponse struct {
	TON  float64 `json:"ton"`
	CATI float64 `json:"cati"`
	USDT float64 `json:"usdt"`
}

// UserResponse is the full user aggregate served to clients.
type UserResponse struct {
	UserID         string          `json:"userId"`
	Username       string          `json:"username"`
	Email          string          `json:"email,omitempty"`
	Avatar         string          `json:"avatar,omitempty"`
	IsAdmin        bool            `json:"isAdmin"`
	Points         int64           `json:"points"`
	VIPLevel       int             `json:"vipLevel"`
	Exp            int64           `json:"exp"`
	MaxExp         int64           `json:"maxExp"`
	GiftPoints     int64           `json:"giftPoints"`
	CompletedTasks int64           `json:"completedTasks"`
	DayStreak      int             `json:"dayStreak"`
	LastClaim      *time.Time      `json:"lastClaim,omitempty"`
	Balance        BalanceResponse `json:"balance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewUserResponse maps the domain aggregate to its wire shape.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		Avatar:         u.Avatar,
		IsAdmin:        u.IsAdmin,
		Points:         u.Points,
		VIPLevel:       u.VIPLevel,
		Exp:            u.Exp,
		MaxExp:         u.MaxExp,
		GiftPoints:     u.GiftPoints,
		CompletedTasks: u.CompletedTasks,
		DayStreak:      u.DayStreak,
		LastClaim:      u.LastClaim,
		Balance: BalanceResponse{
			TON:  u.Balance.TON,
			CATI: u.Balance.CATI,
			USDT: u.Balance.USDT,
		},
		CreatedAt: u.CreatedAt,
	}
}

// EnsureUserRequest carries the profile fields supplied on first contact.
type EnsureUserRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// UpdateUserRequest is a merge patch: only the fields present in the JSON
// body are applied.
type UpdateUserRequest struct {
	Username   *string             `json:"username"`
	Email      *string             `json:"email"`
	Avatar     *string             `json:"avatar"`
	GiftPoints *int64              `json:"giftPoints"`
	Balance    *UpdateBalanceValue `json:"balance"`
}

// UpdateBalanceValue mirrors the patch shape for balances.
type UpdateBalanceValue struct {
	TON  *float64 `json:"ton"`
	CATI *float64 `json:"cati"`
	USDT *float64 `json:"usdt"`
}

// Patch converts the request into a domain patch.
func (r UpdateUserRequest) Patch() model.UserPatch {
	patch := model.UserPatch{
		Username:   r.Username,
		Email:      r.Email,
		Avatar:     r.Avatar,
		GiftPoints: r.GiftPoints,
	}
	if r.Balance != nil {
		patch.Balance = &model.BalancePatch{
			TON:  r.Balance.TON,
			CATI: r.Balance.CATI,
			USDT: r.Balance.USDT,
		}
	}
	return patch
}
