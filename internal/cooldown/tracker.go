// Package cooldown tracks per-user, per-action availability windows.
//
// The tracker is advisory state: it never rejects anything itself, callers
// consult it before starting an action and refuse ineligible starts. Expiry
// is lazy: entries are checked and pruned on query, which converges to the
// same observable state as timer-driven expiry within the one-second UI
// granularity.
package cooldown

import (
	"sync"
	"time"
)

// Kind selects how an expiry is computed when an action starts.
type Kind int

const (
	// KindDuration blocks the action for a fixed interval from its start.
	KindDuration Kind = iota
	// KindDailyBoundary blocks the action until the next local midnight,
	// regardless of when during the day it ran.
	KindDailyBoundary
)

type key struct {
	userID   string
	actionID string
}

// Tracker holds cooldown expiries keyed by (user, action).
type Tracker struct {
	mu      sync.Mutex
	expires map[key]time.Time
}

// NewTracker constructs an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{expires: make(map[key]time.Time)}
}

// MarkStarted records an action start. For KindDuration the entry expires
// at now+duration; for KindDailyBoundary at the next midnight in now's
// location. Marking an action that is still on cooldown overwrites the
// entry; callers are expected to check IsAvailable first.
func (t *Tracker) MarkStarted(userID, actionID string, kind Kind, now time.Time, duration time.Duration) {
	var expiry time.Time
	switch kind {
	case KindDailyBoundary:
		expiry = nextMidnight(now)
	default:
		expiry = now.Add(duration)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.expires[key{userID, actionID}] = expiry
}

// IsAvailable reports whether the action can be started at the given time.
func (t *Tracker) IsAvailable(userID, actionID string, now time.Time) bool {
	_, blocked := t.remaining(userID, actionID, now)
	return !blocked
}

// Remaining returns how long until the action becomes available, and
// whether it is currently blocked.
func (t *Tracker) Remaining(userID, actionID string, now time.Time) (time.Duration, bool) {
	return t.remaining(userID, actionID, now)
}

func (t *Tracker) remaining(userID, actionID string, now time.Time) (time.Duration, bool) {
	k := key{userID, actionID}

	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, ok := t.expires[k]
	if !ok {
		return 0, false
	}
	if !now.Before(expiry) {
		delete(t.expires, k)
		return 0, false
	}
	return expiry.Sub(now), true
}

// Snapshot returns the active action -> expiry (epoch milliseconds) map for
// one user, pruning expired entries along the way. The UI renders its
// countdowns from this.
func (t *Tracker) Snapshot(userID string, now time.Time) map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]int64)
	for k, expiry := range t.expires {
		if k.userID != userID {
			continue
		}
		if !now.Before(expiry) {
			delete(t.expires, k)
			continue
		}
		out[k.actionID] = expiry.UnixMilli()
	}
	return out
}

// Clear removes all entries for a user, used when an account is purged.
func (t *Tracker) Clear(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.expires {
		if k.userID == userID {
			delete(t.expires, k)
		}
	}
}

// nextMidnight returns 00:00:00 of the following day in t's location.
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
