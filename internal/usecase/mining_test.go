package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minedash/minedash/internal/cooldown"
	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/reward"
	"github.com/minedash/minedash/internal/storage/memory"
)

func newMiningUseCase(t *testing.T, at time.Time) (*MiningUseCase, *memory.Store) {
	t.Helper()
	backend := memory.New()
	uc := NewMiningUseCase(backend, cooldown.NewTracker(), reward.NewEngine(nil))
	uc.now = func() time.Time { return at }
	uc.draw = func(int) int { return 0 }
	return uc, backend
}

func seedUser(t *testing.T, backend *memory.Store, id string) {
	t.Helper()
	if _, err := backend.Users().Upsert(context.Background(), model.Profile{UserID: id, Username: id}); err != nil {
		t.Fatal(err)
	}
}

func TestCompleteActionAwardsAndCountsPlay(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc, backend := newMiningUseCase(t, at)
	seedUser(t, backend, "U1")

	res, err := uc.CompleteAction(context.Background(), "U1", "puzzle")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if res.User.Points != 50 || res.User.Exp != 10 {
		t.Fatalf("unexpected user state: %+v", res.User)
	}
	if res.Outcome.PointsAwarded != 50 {
		t.Fatalf("expected 50 points awarded, got %d", res.Outcome.PointsAwarded)
	}
	if res.PlaysToday != 1 {
		t.Fatalf("expected first play of the day, got %d", res.PlaysToday)
	}
	if res.User.CompletedTasks != 1 {
		t.Fatalf("expected completed tasks bump, got %d", res.User.CompletedTasks)
	}
}

func TestCompleteActionUnknownID(t *testing.T) {
	uc, backend := newMiningUseCase(t, time.Now())
	seedUser(t, backend, "U1")

	if _, err := uc.CompleteAction(context.Background(), "U1", "bogus"); !errors.Is(err, domainErrors.ErrUnknownAction) {
		t.Fatalf("expected unknown action, got %v", err)
	}
}

func TestCompleteActionRespectsCooldown(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc, backend := newMiningUseCase(t, at)
	seedUser(t, backend, "U1")
	ctx := context.Background()

	if _, err := uc.CompleteAction(ctx, "U1", "puzzle"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.CompleteAction(ctx, "U1", "puzzle"); !errors.Is(err, domainErrors.ErrActionOnCooldown) {
		t.Fatalf("expected cooldown error, got %v", err)
	}

	// Other actions and other users are unaffected.
	if _, err := uc.CompleteAction(ctx, "U1", "video"); err != nil {
		t.Fatalf("other action must stay available: %v", err)
	}
	seedUser(t, backend, "U2")
	if _, err := uc.CompleteAction(ctx, "U2", "puzzle"); err != nil {
		t.Fatalf("other user must stay available: %v", err)
	}

	// Past the window the action opens again and the play count grows.
	uc.now = func() time.Time { return at.Add(31 * time.Second) }
	res, err := uc.CompleteAction(ctx, "U1", "puzzle")
	if err != nil {
		t.Fatalf("expected available after cooldown: %v", err)
	}
	if res.PlaysToday != 2 {
		t.Fatalf("expected second play of the day, got %d", res.PlaysToday)
	}
}

func TestSpinUsesInjectedDraw(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc, backend := newMiningUseCase(t, at)
	seedUser(t, backend, "U1")
	uc.draw = func(n int) int { return n - 1 } // last wheel segment

	res, err := uc.CompleteAction(context.Background(), "U1", "spin")
	if err != nil {
		t.Fatal(err)
	}
	want := reward.SpinPrizes[len(reward.SpinPrizes)-1]
	if res.Outcome.PointsAwarded != want {
		t.Fatalf("expected drawn prize %d, got %d", want, res.Outcome.PointsAwarded)
	}
}

func TestClaimDailyExtendsStreak(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	uc, backend := newMiningUseCase(t, day1)
	seedUser(t, backend, "U1")
	ctx := context.Background()

	res, err := uc.ClaimDaily(ctx, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.NewStreak != 1 || res.Outcome.PointsAwarded != 125 {
		t.Fatalf("unexpected first claim: %+v", res.Outcome)
	}

	// Same calendar day: blocked even though the tracker was rebuilt,
	// because the persisted claim timestamp guards it.
	fresh := NewMiningUseCase(backend, cooldown.NewTracker(), reward.NewEngine(nil))
	fresh.now = func() time.Time { return day1.Add(2 * time.Hour) }
	if _, err := fresh.ClaimDaily(ctx, "U1"); !errors.Is(err, domainErrors.ErrActionOnCooldown) {
		t.Fatalf("expected same-day claim blocked, got %v", err)
	}

	// Next day extends the streak.
	uc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	res, err = uc.ClaimDaily(ctx, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.NewStreak != 2 || res.Outcome.PointsAwarded != 150 {
		t.Fatalf("unexpected second claim: %+v", res.Outcome)
	}

	// A missed day resets to one.
	uc.now = func() time.Time { return day1.AddDate(0, 0, 4) }
	res, err = uc.ClaimDaily(ctx, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.NewStreak != 1 {
		t.Fatalf("expected streak reset, got %d", res.Outcome.NewStreak)
	}
}

func TestIsActionAvailableAndCooldowns(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc, backend := newMiningUseCase(t, at)
	seedUser(t, backend, "U1")

	if _, err := uc.IsActionAvailable("U1", "bogus"); !errors.Is(err, domainErrors.ErrUnknownAction) {
		t.Fatalf("expected unknown action, got %v", err)
	}
	available, err := uc.IsActionAvailable("U1", "spin")
	if err != nil || !available {
		t.Fatalf("expected available, got %v %v", available, err)
	}

	if _, err := uc.CompleteAction(context.Background(), "U1", "spin"); err != nil {
		t.Fatal(err)
	}

	available, _ = uc.IsActionAvailable("U1", "spin")
	if available {
		t.Fatal("expected spin on cooldown")
	}
	snap := uc.Cooldowns("U1")
	if len(snap) != 1 || snap["spin"] != at.Add(60*time.Second).UnixMilli() {
		t.Fatalf("unexpected cooldown snapshot: %v", snap)
	}
}
