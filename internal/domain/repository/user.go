package repository

import (
	"context"

	"github.com/minedash/minedash/internal/domain/model"
)

// UserRepository describes persistence operations for user aggregates.
//
// Mutations are field-level: ApplyPatch, AddPoints and SetBalance must not
// clobber sibling fields they do not name. A backend acting as an advisory
// cache may relax this to whole-record writes.
type UserRepository interface {
	// Upsert creates the user or, when the id already exists, refreshes the
	// display fields (username, email, avatar) while leaving every counter
	// and balance untouched.
	Upsert(ctx context.Context, profile model.Profile) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	// ApplyPatch merges the set fields of the patch into the stored record
	// and returns the updated aggregate.
	ApplyPatch(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error)
	// AddPoints increments the points counter relative to the stored value.
	AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error)
	// SetBalance overwrites a single currency amount.
	SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error
	// ListAll enumerates every stored user.
	ListAll(ctx context.Context) ([]model.User, error)
	// Leaderboard returns up to limit non-admin users ordered descending by
	// the metric, ties broken by ascending user id.
	Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error)
	// Delete removes the user together with derived per-day play records.
	Delete(ctx context.Context, userID string) error
}
