package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/minedash/minedash/internal/cooldown"
	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
	"github.com/minedash/minedash/internal/reward"
)

// MiningResult is what one completed action hands back to the caller.
type MiningResult struct {
	User       *model.User
	Outcome    reward.Outcome
	PlaysToday int
}

// MiningUseCase runs the earn loop: cooldown gate, reward computation,
// persistence and play accounting.
type MiningUseCase struct {
	backend repository.StorageBackend
	tracker *cooldown.Tracker
	engine  *reward.Engine

	// draw picks the spin wheel segment; injected so tests are
	// deterministic.
	draw func(n int) int
	now  func() time.Time
}

// NewMiningUseCase constructs MiningUseCase with the production randomness
// source and clock.
func NewMiningUseCase(backend repository.StorageBackend, tracker *cooldown.Tracker, engine *reward.Engine) *MiningUseCase {
	return &MiningUseCase{
		backend: backend,
		tracker: tracker,
		engine:  engine,
		draw:    rand.Intn,
		now:     time.Now,
	}
}

// Actions returns the action table served to clients.
func (u *MiningUseCase) Actions() []reward.ActionSpec {
	return reward.Actions()
}

// CompleteAction settles one finished action for the user: checks the
// cooldown, computes the reward, persists the patch, counts the play and
// arms the next cooldown. The cooldown is armed only after persistence
// succeeded, so a storage failure does not lock the user out.
func (u *MiningUseCase) CompleteAction(ctx context.Context, userID, actionID string) (*MiningResult, error) {
	spec, ok := reward.ActionByID(actionID)
	if !ok {
		return nil, domainErrors.ErrUnknownAction
	}

	now := u.now()
	if !u.tracker.IsAvailable(userID, actionID, now) {
		return nil, domainErrors.ErrActionOnCooldown
	}

	user, err := u.backend.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The tracker is in-process, so a restart forgets daily claims. The
	// persisted claim timestamp is the durable guard.
	if spec.Kind == reward.KindDailyClaim && user.LastClaim != nil &&
		model.Day(*user.LastClaim).Equal(model.Day(now)) {
		return nil, domainErrors.ErrActionOnCooldown
	}

	action := reward.ResolvedAction(spec, now)
	if spec.Randomized {
		action.PointReward = reward.ResolveSpinPrize(u.draw)
	}

	outcome := u.engine.ComputeOutcome(*user, action)

	updated, err := u.backend.Users().ApplyPatch(ctx, userID, outcome.Patch)
	if err != nil {
		return nil, err
	}

	plays, err := u.backend.GamePlays().Record(ctx, userID, actionID, now)
	if err != nil {
		return nil, err
	}

	kind := cooldown.KindDuration
	if spec.Kind == reward.KindDailyClaim {
		kind = cooldown.KindDailyBoundary
	}
	u.tracker.MarkStarted(userID, actionID, kind, now, spec.Cooldown)

	return &MiningResult{User: updated, Outcome: outcome, PlaysToday: plays}, nil
}

// ClaimDaily settles the once-per-day claim.
func (u *MiningUseCase) ClaimDaily(ctx context.Context, userID string) (*MiningResult, error) {
	return u.CompleteAction(ctx, userID, reward.DailyClaimID)
}

// IsActionAvailable reports whether the action can be started now.
func (u *MiningUseCase) IsActionAvailable(userID, actionID string) (bool, error) {
	if _, ok := reward.ActionByID(actionID); !ok {
		return false, domainErrors.ErrUnknownAction
	}
	return u.tracker.IsAvailable(userID, actionID, u.now()), nil
}

// Cooldowns returns the user's active cooldowns as expiry timestamps in
// Unix milliseconds, keyed by action id.
func (u *MiningUseCase) Cooldowns(userID string) map[string]int64 {
	return u.tracker.Snapshot(userID, u.now())
}

// PlaysToday returns how many times the user completed the action today.
func (u *MiningUseCase) PlaysToday(ctx context.Context, userID, actionID string) (int, error) {
	if _, ok := reward.ActionByID(actionID); !ok {
		return 0, domainErrors.ErrUnknownAction
	}
	return u.backend.GamePlays().Get(ctx, userID, actionID, u.now())
}
