package usecase

import (
	"context"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

// DefaultLeaderboardLimit is used when the caller does not ask for a size.
const DefaultLeaderboardLimit = 10

// LeaderboardUseCase serves ranked user lists.
type LeaderboardUseCase struct {
	backend repository.StorageBackend
}

// NewLeaderboardUseCase constructs LeaderboardUseCase.
func NewLeaderboardUseCase(backend repository.StorageBackend) *LeaderboardUseCase {
	return &LeaderboardUseCase{backend: backend}
}

// Top returns up to limit users ranked by the metric, admins excluded.
func (u *LeaderboardUseCase) Top(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	if !metric.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return u.backend.Users().Leaderboard(ctx, metric, limit)
}
