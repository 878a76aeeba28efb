package app

import (
	"context"
	"testing"

	"github.com/minedash/minedash/internal/cooldown"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/reward"
	"github.com/minedash/minedash/internal/storage/memory"
	"github.com/minedash/minedash/internal/usecase"
)

func newTestFacade(t *testing.T) (*DashboardFacade, *memory.Store) {
	t.Helper()

	backend := memory.New()
	admin, err := usecase.NewAdminUseCase(backend, "secret")
	if err != nil {
		t.Fatalf("admin use case: %v", err)
	}
	facade := NewDashboardFacade(
		usecase.NewProfileUseCase(backend),
		usecase.NewMiningUseCase(backend, cooldown.NewTracker(), reward.NewEngine(nil)),
		usecase.NewConversionUseCase(backend),
		usecase.NewWithdrawalUseCase(backend, 100),
		usecase.NewLeaderboardUseCase(backend),
		admin,
	)
	return facade, backend
}

func TestFacadeUserFlow(t *testing.T) {
	facade, _ := newTestFacade(t)
	ctx := context.Background()

	u, err := facade.EnsureUser(ctx, model.Profile{UserID: "U1", Username: "miner"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if u.UserID != "U1" {
		t.Fatalf("unexpected user id %q", u.UserID)
	}

	if _, err := facade.AddPoints(ctx, "U1", 25000); err != nil {
		t.Fatalf("add points: %v", err)
	}

	converted, err := facade.ConvertPoints(ctx, "U1", 2*reward.ConversionRate)
	if err != nil {
		t.Fatalf("convert points: %v", err)
	}
	if converted.Balance.CATI != 2 {
		t.Fatalf("expected 2 CATI after conversion, got %v", converted.Balance.CATI)
	}

	got, err := facade.User(ctx, "U1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Points != 25000-2*reward.ConversionRate {
		t.Fatalf("unexpected points %d", got.Points)
	}
}

func TestFacadeWithdrawalFlow(t *testing.T) {
	facade, _ := newTestFacade(t)
	ctx := context.Background()

	if _, err := facade.EnsureUser(ctx, model.Profile{UserID: "U1"}); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if err := facade.SetBalance(ctx, "U1", model.CurrencyCATI, 500); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	w, err := facade.RequestWithdrawal(ctx, "U1", model.CurrencyCATI, 200, "wallet-1")
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}
	if w.Status != model.WithdrawalStatusPending {
		t.Fatalf("expected pending status, got %q", w.Status)
	}

	mine, err := facade.WithdrawalsForUser(ctx, "U1")
	if err != nil {
		t.Fatalf("list user withdrawals: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected one withdrawal, got %d", len(mine))
	}

	resolved, err := facade.ResolveWithdrawal(ctx, w.ID, model.WithdrawalStatusApproved, "ADM")
	if err != nil {
		t.Fatalf("resolve withdrawal: %v", err)
	}
	if resolved.Status != model.WithdrawalStatusApproved {
		t.Fatalf("expected approved status, got %q", resolved.Status)
	}

	got, err := facade.User(ctx, "U1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Balance.CATI != 300 {
		t.Fatalf("expected balance 300 after approval, got %v", got.Balance.CATI)
	}
}

func TestFacadeAdminAndCatalogs(t *testing.T) {
	facade, _ := newTestFacade(t)
	ctx := context.Background()

	if _, err := facade.EnsureUser(ctx, model.Profile{UserID: "ADM", IsAdmin: true}); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if _, err := facade.EnsureUser(ctx, model.Profile{UserID: "U1"}); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	if err := facade.AdminLogin("secret"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if err := facade.EnsureAdmin(ctx, "ADM"); err != nil {
		t.Fatalf("ensure admin rights: %v", err)
	}

	stats, err := facade.AdminStats(ctx)
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Fatalf("expected 2 users in stats, got %d", stats.TotalUsers)
	}

	if len(facade.Actions()) == 0 {
		t.Fatal("expected actions catalog")
	}
	if len(facade.Packs()) == 0 {
		t.Fatal("expected packs catalog")
	}

	entries, err := facade.Leaderboard(ctx, model.LeaderboardPoints, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	for _, e := range entries {
		if e.UserID == "ADM" {
			t.Fatal("expected admins excluded from leaderboard")
		}
	}

	if cooldowns := facade.Cooldowns("U1"); len(cooldowns) != 0 {
		t.Fatalf("expected empty cooldowns, got %v", cooldowns)
	}
}
