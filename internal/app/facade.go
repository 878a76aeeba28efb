package app

import (
	"context"

	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/reward"
	"github.com/minedash/minedash/internal/usecase"
)

// DashboardFacade aggregates the use cases behind a single surface for the
// HTTP layer.
type DashboardFacade struct {
	profile     *usecase.ProfileUseCase
	mining      *usecase.MiningUseCase
	conversion  *usecase.ConversionUseCase
	withdrawals *usecase.WithdrawalUseCase
	leaderboard *usecase.LeaderboardUseCase
	admin       *usecase.AdminUseCase
}

func NewDashboardFacade(
	profile *usecase.ProfileUseCase,
	mining *usecase.MiningUseCase,
	conversion *usecase.ConversionUseCase,
	withdrawals *usecase.WithdrawalUseCase,
	leaderboard *usecase.LeaderboardUseCase,
	admin *usecase.AdminUseCase,
) *DashboardFacade {
	return &DashboardFacade{
		profile:     profile,
		mining:      mining,
		conversion:  conversion,
		withdrawals: withdrawals,
		leaderboard: leaderboard,
		admin:       admin,
	}
}

func (f *DashboardFacade) EnsureUser(ctx context.Context, profile model.Profile) (*model.User, error) {
	return f.profile.EnsureUser(ctx, profile)
}

func (f *DashboardFacade) User(ctx context.Context, userID string) (*model.User, error) {
	return f.profile.GetUser(ctx, userID)
}

func (f *DashboardFacade) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	return f.profile.UpdateUser(ctx, userID, patch)
}

func (f *DashboardFacade) AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error) {
	return f.profile.AddPoints(ctx, userID, delta)
}

func (f *DashboardFacade) SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error {
	return f.profile.SetBalance(ctx, userID, currency, amount)
}

func (f *DashboardFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.profile.ListUsers(ctx)
}

func (f *DashboardFacade) DeleteUser(ctx context.Context, userID string) error {
	return f.profile.DeleteUser(ctx, userID)
}

func (f *DashboardFacade) Actions() []reward.ActionSpec {
	return f.mining.Actions()
}

func (f *DashboardFacade) CompleteAction(ctx context.Context, userID, actionID string) (*usecase.MiningResult, error) {
	return f.mining.CompleteAction(ctx, userID, actionID)
}

func (f *DashboardFacade) ClaimDaily(ctx context.Context, userID string) (*usecase.MiningResult, error) {
	return f.mining.ClaimDaily(ctx, userID)
}

func (f *DashboardFacade) IsActionAvailable(userID, actionID string) (bool, error) {
	return f.mining.IsActionAvailable(userID, actionID)
}

func (f *DashboardFacade) Cooldowns(userID string) map[string]int64 {
	return f.mining.Cooldowns(userID)
}

func (f *DashboardFacade) PlaysToday(ctx context.Context, userID, actionID string) (int, error) {
	return f.mining.PlaysToday(ctx, userID, actionID)
}

func (f *DashboardFacade) ConvertPoints(ctx context.Context, userID string, points int64) (*model.User, error) {
	return f.conversion.ConvertPoints(ctx, userID, points)
}

func (f *DashboardFacade) Packs() []reward.Pack {
	return f.conversion.Packs()
}

func (f *DashboardFacade) ClaimPack(ctx context.Context, userID string, packID int) (*model.User, error) {
	return f.conversion.ClaimPack(ctx, userID, packID)
}

func (f *DashboardFacade) RequestWithdrawal(ctx context.Context, userID string, currency model.Currency, amount float64, wallet string) (*model.WithdrawalRequest, error) {
	return f.withdrawals.Request(ctx, userID, currency, amount, wallet)
}

func (f *DashboardFacade) Withdrawals(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	return f.withdrawals.List(ctx, status)
}

func (f *DashboardFacade) WithdrawalsForUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	return f.withdrawals.ListByUser(ctx, userID)
}

func (f *DashboardFacade) ResolveWithdrawal(ctx context.Context, id string, status model.WithdrawalStatus, processedBy string) (*model.WithdrawalRequest, error) {
	return f.withdrawals.SetStatus(ctx, id, status, processedBy)
}

func (f *DashboardFacade) Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	return f.leaderboard.Top(ctx, metric, limit)
}

func (f *DashboardFacade) AdminLogin(password string) error {
	return f.admin.Login(password)
}

func (f *DashboardFacade) EnsureAdmin(ctx context.Context, userID string) error {
	return f.admin.EnsureAdmin(ctx, userID)
}

func (f *DashboardFacade) AdminStats(ctx context.Context) (*usecase.AdminStats, error) {
	return f.admin.Stats(ctx)
}
