package handlers

import (
	"context"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/reward"
	"github.com/minedash/minedash/internal/usecase"
)

// ProfileFacade describes the user lifecycle operations used by handlers.
type ProfileFacade interface {
	EnsureUser(ctx context.Context, profile model.Profile) (*model.User, error)
	User(ctx context.Context, userID string) (*model.User, error)
	UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error)
}

// MiningFacade encapsulates the earn loop operations exposed via HTTP.
type MiningFacade interface {
	Actions() []reward.ActionSpec
	CompleteAction(ctx context.Context, userID, actionID string) (*usecase.MiningResult, error)
	ClaimDaily(ctx context.Context, userID string) (*usecase.MiningResult, error)
	IsActionAvailable(userID, actionID string) (bool, error)
	Cooldowns(userID string) map[string]int64
	PlaysToday(ctx context.Context, userID, actionID string) (int, error)
}

// ConversionFacade exchanges points for currency and packs.
type ConversionFacade interface {
	ConvertPoints(ctx context.Context, userID string, points int64) (*model.User, error)
	Packs() []reward.Pack
	ClaimPack(ctx context.Context, userID string, packID int) (*model.User, error)
}

// WithdrawalFacade provides the withdrawal ledger operations.
type WithdrawalFacade interface {
	RequestWithdrawal(ctx context.Context, userID string, currency model.Currency, amount float64, wallet string) (*model.WithdrawalRequest, error)
	WithdrawalsForUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error)
}

// LeaderboardFacade serves ranked user lists.
type LeaderboardFacade interface {
	Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error)
}

// AdminFacade aggregates the administrative operations.
type AdminFacade interface {
	AdminLogin(password string) error
	EnsureAdmin(ctx context.Context, userID string) error
	AdminStats(ctx context.Context) (*usecase.AdminStats, error)
	Users(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, userID string) error
	AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error)
	SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error
	Withdrawals(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	ResolveWithdrawal(ctx context.Context, id string, status model.WithdrawalStatus, processedBy string) (*model.WithdrawalRequest, error)
}

// DashboardFacade aggregates the full set of operations used across handlers.
type DashboardFacade interface {
	ProfileFacade
	MiningFacade
	ConversionFacade
	WithdrawalFacade
	LeaderboardFacade
	AdminFacade
}
