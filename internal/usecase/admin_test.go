package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/storage/memory"
)

func TestAdminLogin(t *testing.T) {
	uc, err := NewAdminUseCase(memory.New(), "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	if err := uc.Login("s3cret"); err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}
	if err := uc.Login("wrong"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	backend := memory.New()
	uc, err := NewAdminUseCase(backend, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "U1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "ADM", IsAdmin: true}); err != nil {
		t.Fatal(err)
	}

	if err := uc.EnsureAdmin(ctx, "ADM"); err != nil {
		t.Fatalf("expected admin accepted: %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "U1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for regular user, got %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	backend := memory.New()
	uc, err := NewAdminUseCase(backend, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	now := time.Now()

	for _, id := range []string{"U1", "U2"} {
		if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: id}); err != nil {
			t.Fatal(err)
		}
		if _, err := backend.Users().AddPoints(ctx, id, 1000); err != nil {
			t.Fatal(err)
		}
		if err := backend.Users().SetBalance(ctx, id, model.CurrencyTON, 2); err != nil {
			t.Fatal(err)
		}
	}
	if err := backend.Withdrawals().Create(ctx, &model.WithdrawalRequest{
		ID: "W1", UserID: "U1", Currency: model.CurrencyCATI, Amount: 100,
		Status: model.WithdrawalStatusPending, RequestDate: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := backend.Withdrawals().Create(ctx, &model.WithdrawalRequest{
		ID: "W2", UserID: "U2", Currency: model.CurrencyCATI, Amount: 100,
		Status: model.WithdrawalStatusRejected, RequestDate: now,
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalUsers != 2 || stats.TotalPoints != 2000 || stats.TotalTON != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.AverageLevel != 1 {
		t.Fatalf("expected average level 1, got %v", stats.AverageLevel)
	}
	if stats.TotalWithdrawals != 2 || stats.PendingWithdrawals != 1 {
		t.Fatalf("unexpected withdrawal stats: %+v", stats)
	}
}
