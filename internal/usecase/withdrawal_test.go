package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/storage/memory"
)

func newWithdrawalFixture(t *testing.T) (*WithdrawalUseCase, *memory.Store) {
	t.Helper()
	backend := memory.New()
	uc := NewWithdrawalUseCase(backend, 100)
	nextID := 0
	uc.newID = func() string {
		nextID++
		return fmt.Sprintf("W%d", nextID)
	}
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "U1", Username: "miner"}); err != nil {
		t.Fatal(err)
	}
	if err := backend.Users().SetBalance(ctx, "U1", model.CurrencyCATI, 500); err != nil {
		t.Fatal(err)
	}
	if err := backend.Users().SetBalance(ctx, "U1", model.CurrencyTON, 5); err != nil {
		t.Fatal(err)
	}
	return uc, backend
}

func TestRequestValidation(t *testing.T) {
	uc, _ := newWithdrawalFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		currency model.Currency
		amount   float64
		wallet   string
		want     error
	}{
		{"invalid currency", model.Currency("doge"), 10, "addr", domainErrors.ErrInvalidCurrency},
		{"zero amount", model.CurrencyCATI, 0, "addr", domainErrors.ErrInvalidAmount},
		{"negative amount", model.CurrencyCATI, -5, "addr", domainErrors.ErrInvalidAmount},
		{"blank wallet", model.CurrencyCATI, 150, "   ", domainErrors.ErrEmptyWalletAddress},
		{"below minimum", model.CurrencyCATI, 99, "addr", domainErrors.ErrBelowMinimumWithdrawal},
		{"over balance", model.CurrencyCATI, 600, "addr", domainErrors.ErrInsufficientBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Request(ctx, "U1", tc.currency, tc.amount, tc.wallet); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// The CATI minimum does not apply to other currencies.
	if _, err := uc.Request(ctx, "U1", model.CurrencyTON, 1, "addr"); err != nil {
		t.Fatalf("small TON withdrawal must pass: %v", err)
	}
}

func TestRequestKeepsFundsUntilApproval(t *testing.T) {
	uc, backend := newWithdrawalFixture(t)
	ctx := context.Background()

	req, err := uc.Request(ctx, "U1", model.CurrencyCATI, 200, "addr")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if req.Status != model.WithdrawalStatusPending || req.Username != "miner" {
		t.Fatalf("unexpected request: %+v", req)
	}

	u, err := backend.Users().GetByID(ctx, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if u.Balance.CATI != 500 {
		t.Fatalf("funds must stay on the account while pending, got %f", u.Balance.CATI)
	}
}

func TestSetStatusApproveAndReject(t *testing.T) {
	uc, backend := newWithdrawalFixture(t)
	ctx := context.Background()

	req, err := uc.Request(ctx, "U1", model.CurrencyCATI, 200, "addr")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := uc.SetStatus(ctx, req.ID, model.WithdrawalStatus("weird"), "admin"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := uc.SetStatus(ctx, req.ID, model.WithdrawalStatusPending, "admin"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("pending is not a resolution, got %v", err)
	}

	approved, err := uc.SetStatus(ctx, req.ID, model.WithdrawalStatusApproved, "admin")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != model.WithdrawalStatusApproved || approved.ProcessedBy != "admin" {
		t.Fatalf("unexpected approved request: %+v", approved)
	}

	u, _ := backend.Users().GetByID(ctx, "U1")
	if u.Balance.CATI != 300 {
		t.Fatalf("expected 300 cati after approval, got %f", u.Balance.CATI)
	}

	if _, err := uc.SetStatus(ctx, req.ID, model.WithdrawalStatusRejected, "admin"); !errors.Is(err, domainErrors.ErrAlreadyProcessed) {
		t.Fatalf("expected already processed, got %v", err)
	}

	second, err := uc.Request(ctx, "U1", model.CurrencyCATI, 150, "addr")
	if err != nil {
		t.Fatal(err)
	}
	rejected, err := uc.SetStatus(ctx, second.ID, model.WithdrawalStatusRejected, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if rejected.Status != model.WithdrawalStatusRejected {
		t.Fatalf("unexpected status: %s", rejected.Status)
	}
	u, _ = backend.Users().GetByID(ctx, "U1")
	if u.Balance.CATI != 300 {
		t.Fatalf("rejection must not touch the balance, got %f", u.Balance.CATI)
	}
}

func TestListFiltersAndScopes(t *testing.T) {
	uc, backend := newWithdrawalFixture(t)
	ctx := context.Background()

	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "U2"}); err != nil {
		t.Fatal(err)
	}
	if err := backend.Users().SetBalance(ctx, "U2", model.CurrencyCATI, 1000); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.Request(ctx, "U1", model.CurrencyCATI, 150, "a1"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Request(ctx, "U2", model.CurrencyCATI, 250, "a2"); err != nil {
		t.Fatal(err)
	}

	bogus := model.WithdrawalStatus("weird")
	if _, err := uc.List(ctx, &bogus); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}

	all, err := uc.List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(all))
	}

	mine, err := uc.ListByUser(ctx, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].UserID != "U1" {
		t.Fatalf("unexpected user scope: %+v", mine)
	}
}
