package reward

import (
	"time"

	"github.com/minedash/minedash/internal/domain/model"
)

// LevelPolicy returns the experience threshold for a given VIP level. It is
// supplied by the caller; the default mirrors the reference behavior of a
// constant threshold.
type LevelPolicy func(level int) int64

// DefaultLevelPolicy keeps the threshold at its initial value forever.
func DefaultLevelPolicy(int) int64 { return model.InitialMaxExp }

// Action is a fully resolved action completion handed to the engine.
// Randomized outcomes (spin wheel) must be drawn before building it.
type Action struct {
	Spec        ActionSpec
	PointReward int64
	ExpReward   int64
	// CurrencyRewards credits balances directly, used by reward packs and
	// promo grants.
	CurrencyRewards map[model.Currency]float64
	Now             time.Time
}

// ResolvedAction builds an Action from a spec with its table rewards.
func ResolvedAction(spec ActionSpec, now time.Time) Action {
	return Action{Spec: spec, PointReward: spec.PointReward, ExpReward: spec.ExpReward, Now: now}
}

// Outcome is the computed result of one action completion.
type Outcome struct {
	// Patch carries only the fields the action changed; applying it
	// concurrently with another action's patch keeps both deltas.
	Patch         model.UserPatch
	PointsAwarded int64
	ExpAwarded    int64
	LeveledUp     bool
	NewLevel      int
	NewStreak     int
}

// Engine computes reward outcomes. It is pure: no I/O, no clock reads, no
// randomness. Everything it needs arrives in the user snapshot and the
// resolved action.
type Engine struct {
	levelPolicy LevelPolicy
}

// NewEngine constructs an engine with the given level policy, falling back
// to the default policy when nil.
func NewEngine(policy LevelPolicy) *Engine {
	if policy == nil {
		policy = DefaultLevelPolicy
	}
	return &Engine{levelPolicy: policy}
}

// ComputeOutcome applies the reward, experience, level-up and streak rules
// to a user snapshot. The output patch always satisfies 0 <= exp < maxExp
// and never drives points or balances negative.
func (e *Engine) ComputeOutcome(u model.User, a Action) Outcome {
	out := Outcome{
		PointsAwarded: a.PointReward,
		ExpAwarded:    a.ExpReward,
	}

	points := u.Points
	if a.Spec.Kind == KindDailyClaim {
		out.NewStreak = nextStreak(u.DayStreak, u.LastClaim, a.Now)
		bonusDays := out.NewStreak
		if bonusDays > DailyStreakCap {
			bonusDays = DailyStreakCap
		}
		out.PointsAwarded = DailyBasePoints + DailyStreakBonus*int64(bonusDays)
		out.ExpAwarded = DailyExpReward
		out.Patch.DayStreak = model.Int(out.NewStreak)
		out.Patch.LastClaim = model.Time(a.Now)
	}

	points += out.PointsAwarded
	if points < 0 {
		points = 0
	}
	out.Patch.Points = model.Int64(points)

	exp := u.Exp + out.ExpAwarded
	level := u.VIPLevel
	maxExp := u.MaxExp
	if maxExp <= 0 {
		maxExp = e.levelPolicy(level)
	}
	// Loop, not branch: a single large reward may cross several levels.
	for exp >= maxExp {
		exp -= maxExp
		level++
		maxExp = e.levelPolicy(level)
		if maxExp <= 0 {
			maxExp = model.InitialMaxExp
		}
	}
	out.Patch.Exp = model.Int64(exp)
	if level != u.VIPLevel {
		out.LeveledUp = true
		out.Patch.VIPLevel = model.Int(level)
		out.Patch.MaxExp = model.Int64(maxExp)
	}
	out.NewLevel = level

	out.Patch.CompletedTasks = model.Int64(u.CompletedTasks + 1)

	if len(a.CurrencyRewards) > 0 {
		bp := &model.BalancePatch{}
		for _, c := range model.Currencies() {
			delta, ok := a.CurrencyRewards[c]
			if !ok {
				continue
			}
			amount := u.Balance.Get(c) + delta
			if amount < 0 {
				amount = 0
			}
			bp.Set(c, amount)
		}
		out.Patch.Balance = bp
	}

	return out
}

// nextStreak implements the daily streak policy: a claim on the calendar
// day right after the previous claim extends the streak; the first claim
// ever, or the first claim after a missed day, starts over at 1. A
// same-day claim (normally blocked by the cooldown) keeps the streak.
func nextStreak(current int, lastClaim *time.Time, now time.Time) int {
	if lastClaim == nil {
		return 1
	}
	lastDay := model.Day(lastClaim.In(now.Location()))
	claimDay := model.Day(now)
	switch {
	case claimDay.Equal(lastDay):
		if current < 1 {
			return 1
		}
		return current
	case claimDay.Equal(lastDay.AddDate(0, 0, 1)):
		if current < 0 {
			current = 0
		}
		return current + 1
	}
	return 1
}
