package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/storage/memory"
)

func TestConvertPoints(t *testing.T) {
	backend := memory.New()
	uc := NewConversionUseCase(backend)
	ctx := context.Background()

	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "U1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Users().AddPoints(ctx, "U1", 25000); err != nil {
		t.Fatal(err)
	}

	u, err := uc.ConvertPoints(ctx, "U1", 20000)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if u.Points != 5000 {
		t.Fatalf("expected 5000 points left, got %d", u.Points)
	}
	if u.Balance.CATI != 2 {
		t.Fatalf("expected 2 cati, got %f", u.Balance.CATI)
	}

	// Fractional result below one whole coin.
	u, err = uc.ConvertPoints(ctx, "U1", 5000)
	if err != nil {
		t.Fatal(err)
	}
	if u.Points != 0 || u.Balance.CATI != 2.5 {
		t.Fatalf("unexpected state after fractional convert: points=%d cati=%f", u.Points, u.Balance.CATI)
	}
}

func TestConvertPointsValidation(t *testing.T) {
	backend := memory.New()
	uc := NewConversionUseCase(backend)
	ctx := context.Background()

	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "U1"}); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.ConvertPoints(ctx, "U1", 0); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := uc.ConvertPoints(ctx, "U1", -100); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := uc.ConvertPoints(ctx, "U1", 10000); !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if _, err := uc.ConvertPoints(ctx, "missing", 10000); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClaimPack(t *testing.T) {
	backend := memory.New()
	uc := NewConversionUseCase(backend)
	ctx := context.Background()

	if _, err := backend.Users().Upsert(ctx, model.Profile{UserID: "U1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Users().AddPoints(ctx, "U1", 1500); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.ClaimPack(ctx, "U1", 99); !errors.Is(err, domainErrors.ErrUnknownAction) {
		t.Fatalf("expected unknown pack, got %v", err)
	}
	if _, err := uc.ClaimPack(ctx, "U1", 5); !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance for legendary pack, got %v", err)
	}

	u, err := uc.ClaimPack(ctx, "U1", 1)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if u.Points != 500 {
		t.Fatalf("expected 500 points left, got %d", u.Points)
	}
	if u.Balance.TON != 1 || u.Balance.CATI != 50 || u.Balance.USDT != 2 {
		t.Fatalf("unexpected balance: %+v", u.Balance)
	}
	if u.GiftPoints != 100 {
		t.Fatalf("expected 100 gift points, got %d", u.GiftPoints)
	}
}

func TestPacksTableIsCopied(t *testing.T) {
	uc := NewConversionUseCase(memory.New())
	packs := uc.Packs()
	if len(packs) != 5 {
		t.Fatalf("expected 5 packs, got %d", len(packs))
	}
	packs[0].Cost = 1
	if uc.Packs()[0].Cost == 1 {
		t.Fatal("mutating the returned slice must not change the table")
	}
}
