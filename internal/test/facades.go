package test

import (
	"context"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/reward"
	"github.com/minedash/minedash/internal/usecase"
)

// ProfileFacadeStub provides controllable behaviour for profile endpoints.
type ProfileFacadeStub struct {
	EnsureUserFn func(context.Context, model.Profile) (*model.User, error)
	UserFn       func(context.Context, string) (*model.User, error)
	UpdateUserFn func(context.Context, string, model.UserPatch) (*model.User, error)
}

// EnsureUser delegates to provided function or echoes the profile back.
func (s ProfileFacadeStub) EnsureUser(ctx context.Context, p model.Profile) (*model.User, error) {
	if s.EnsureUserFn != nil {
		return s.EnsureUserFn(ctx, p)
	}
	return model.NewUser(p), nil
}

// User returns configured user or a default record.
func (s ProfileFacadeStub) User(ctx context.Context, userID string) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, userID)
	}
	return model.NewUser(model.Profile{UserID: userID}), nil
}

// UpdateUser applies configured patch behaviour.
func (s ProfileFacadeStub) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	if s.UpdateUserFn != nil {
		return s.UpdateUserFn(ctx, userID, patch)
	}
	u := model.NewUser(model.Profile{UserID: userID})
	patch.Apply(u)
	return u, nil
}

// MiningFacadeStub simulates the earn loop operations.
type MiningFacadeStub struct {
	ActionsFn           func() []reward.ActionSpec
	CompleteActionFn    func(context.Context, string, string) (*usecase.MiningResult, error)
	ClaimDailyFn        func(context.Context, string) (*usecase.MiningResult, error)
	IsActionAvailableFn func(string, string) (bool, error)
	CooldownsFn         func(string) map[string]int64
	PlaysTodayFn        func(context.Context, string, string) (int, error)
}

// Actions returns the configured catalog or the built-in one.
func (s MiningFacadeStub) Actions() []reward.ActionSpec {
	if s.ActionsFn != nil {
		return s.ActionsFn()
	}
	return reward.Actions()
}

// CompleteAction delegates to provided function or awards nothing.
func (s MiningFacadeStub) CompleteAction(ctx context.Context, userID, actionID string) (*usecase.MiningResult, error) {
	if s.CompleteActionFn != nil {
		return s.CompleteActionFn(ctx, userID, actionID)
	}
	return &usecase.MiningResult{User: model.NewUser(model.Profile{UserID: userID})}, nil
}

// ClaimDaily delegates to provided function or awards nothing.
func (s MiningFacadeStub) ClaimDaily(ctx context.Context, userID string) (*usecase.MiningResult, error) {
	if s.ClaimDailyFn != nil {
		return s.ClaimDailyFn(ctx, userID)
	}
	return &usecase.MiningResult{User: model.NewUser(model.Profile{UserID: userID})}, nil
}

// IsActionAvailable reports configured availability, true by default.
func (s MiningFacadeStub) IsActionAvailable(userID, actionID string) (bool, error) {
	if s.IsActionAvailableFn != nil {
		return s.IsActionAvailableFn(userID, actionID)
	}
	return true, nil
}

// Cooldowns returns configured snapshot or an empty one.
func (s MiningFacadeStub) Cooldowns(userID string) map[string]int64 {
	if s.CooldownsFn != nil {
		return s.CooldownsFn(userID)
	}
	return map[string]int64{}
}

// PlaysToday returns configured counter, zero by default.
func (s MiningFacadeStub) PlaysToday(ctx context.Context, userID, actionID string) (int, error) {
	if s.PlaysTodayFn != nil {
		return s.PlaysTodayFn(ctx, userID, actionID)
	}
	return 0, nil
}

// ConversionFacadeStub simulates point conversion and pack claims.
type ConversionFacadeStub struct {
	ConvertPointsFn func(context.Context, string, int64) (*model.User, error)
	PacksFn         func() []reward.Pack
	ClaimPackFn     func(context.Context, string, int) (*model.User, error)
}

// ConvertPoints delegates to provided function or returns a default user.
func (s ConversionFacadeStub) ConvertPoints(ctx context.Context, userID string, points int64) (*model.User, error) {
	if s.ConvertPointsFn != nil {
		return s.ConvertPointsFn(ctx, userID, points)
	}
	return model.NewUser(model.Profile{UserID: userID}), nil
}

// Packs returns the configured catalog or the built-in one.
func (s ConversionFacadeStub) Packs() []reward.Pack {
	if s.PacksFn != nil {
		return s.PacksFn()
	}
	return reward.Packs()
}

// ClaimPack delegates to provided function or returns a default user.
func (s ConversionFacadeStub) ClaimPack(ctx context.Context, userID string, packID int) (*model.User, error) {
	if s.ClaimPackFn != nil {
		return s.ClaimPackFn(ctx, userID, packID)
	}
	return model.NewUser(model.Profile{UserID: userID}), nil
}

// WithdrawalFacadeStub simulates user withdrawal operations.
type WithdrawalFacadeStub struct {
	RequestWithdrawalFn  func(context.Context, string, model.Currency, float64, string) (*model.WithdrawalRequest, error)
	WithdrawalsForUserFn func(context.Context, string) ([]model.WithdrawalRequest, error)
}

// RequestWithdrawal delegates to provided function or creates a pending record.
func (s WithdrawalFacadeStub) RequestWithdrawal(ctx context.Context, userID string, currency model.Currency, amount float64, wallet string) (*model.WithdrawalRequest, error) {
	if s.RequestWithdrawalFn != nil {
		return s.RequestWithdrawalFn(ctx, userID, currency, amount, wallet)
	}
	return &model.WithdrawalRequest{
		ID:            "W1",
		UserID:        userID,
		Currency:      currency,
		Amount:        amount,
		WalletAddress: wallet,
		Status:        model.WithdrawalStatusPending,
	}, nil
}

// WithdrawalsForUser returns configured history.
func (s WithdrawalFacadeStub) WithdrawalsForUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	if s.WithdrawalsForUserFn != nil {
		return s.WithdrawalsForUserFn(ctx, userID)
	}
	return []model.WithdrawalRequest{{ID: "W1", UserID: userID, Status: model.WithdrawalStatusPending}}, nil
}

// LeaderboardFacadeStub returns canned rankings.
type LeaderboardFacadeStub struct {
	LeaderboardFn func(context.Context, model.LeaderboardMetric, int) ([]model.LeaderboardEntry, error)
}

// Leaderboard delegates to provided function or returns a single entry.
func (s LeaderboardFacadeStub) Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	if s.LeaderboardFn != nil {
		return s.LeaderboardFn(ctx, metric, limit)
	}
	return []model.LeaderboardEntry{{UserID: "U1", Points: 100}}, nil
}

// AdminFacadeStub simulates the administrative surface.
type AdminFacadeStub struct {
	AdminLoginFn        func(string) error
	EnsureAdminFn       func(context.Context, string) error
	AdminStatsFn        func(context.Context) (*usecase.AdminStats, error)
	UsersFn             func(context.Context) ([]model.User, error)
	DeleteUserFn        func(context.Context, string) error
	AddPointsFn         func(context.Context, string, int64) (*model.User, error)
	SetBalanceFn        func(context.Context, string, model.Currency, float64) error
	WithdrawalsFn       func(context.Context, *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	ResolveWithdrawalFn func(context.Context, string, model.WithdrawalStatus, string) (*model.WithdrawalRequest, error)
}

// AdminLogin delegates to provided function or accepts any password.
func (s AdminFacadeStub) AdminLogin(password string) error {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(password)
	}
	return nil
}

// EnsureAdmin delegates to provided function or grants access.
func (s AdminFacadeStub) EnsureAdmin(ctx context.Context, userID string) error {
	if s.EnsureAdminFn != nil {
		return s.EnsureAdminFn(ctx, userID)
	}
	return nil
}

// AdminStats returns configured aggregates.
func (s AdminFacadeStub) AdminStats(ctx context.Context) (*usecase.AdminStats, error) {
	if s.AdminStatsFn != nil {
		return s.AdminStatsFn(ctx)
	}
	return &usecase.AdminStats{TotalUsers: 1}, nil
}

// Users returns configured user list.
func (s AdminFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{*model.NewUser(model.Profile{UserID: "U1"})}, nil
}

// DeleteUser delegates to provided function.
func (s AdminFacadeStub) DeleteUser(ctx context.Context, userID string) error {
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, userID)
	}
	return nil
}

// AddPoints delegates to provided function or returns a default user.
func (s AdminFacadeStub) AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error) {
	if s.AddPointsFn != nil {
		return s.AddPointsFn(ctx, userID, delta)
	}
	u := model.NewUser(model.Profile{UserID: userID})
	u.Points = delta
	return u, nil
}

// SetBalance delegates to provided function.
func (s AdminFacadeStub) SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error {
	if s.SetBalanceFn != nil {
		return s.SetBalanceFn(ctx, userID, currency, amount)
	}
	return nil
}

// Withdrawals returns configured ledger entries.
func (s AdminFacadeStub) Withdrawals(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	if s.WithdrawalsFn != nil {
		return s.WithdrawalsFn(ctx, status)
	}
	return []model.WithdrawalRequest{{ID: "W1", Status: model.WithdrawalStatusPending}}, nil
}

// ResolveWithdrawal delegates to provided function or flips the status.
func (s AdminFacadeStub) ResolveWithdrawal(ctx context.Context, id string, status model.WithdrawalStatus, processedBy string) (*model.WithdrawalRequest, error) {
	if s.ResolveWithdrawalFn != nil {
		return s.ResolveWithdrawalFn(ctx, id, status, processedBy)
	}
	return &model.WithdrawalRequest{ID: id, Status: status, ProcessedBy: processedBy}, nil
}

// DashboardFacadeStub aggregates all facade stubs for router level tests.
type DashboardFacadeStub struct {
	ProfileFacadeStub
	MiningFacadeStub
	ConversionFacadeStub
	WithdrawalFacadeStub
	LeaderboardFacadeStub
	AdminFacadeStub
}
