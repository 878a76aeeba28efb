package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

// AdminStats is the aggregate snapshot shown on the admin dashboard.
type AdminStats struct {
	TotalUsers         int     `json:"totalUsers"`
	TotalPoints        int64   `json:"totalPoints"`
	TotalTasks         int64   `json:"totalTasks"`
	AverageLevel       float64 `json:"averageLevel"`
	TotalTON           float64 `json:"totalTon"`
	TotalCATI          float64 `json:"totalCati"`
	TotalUSDT          float64 `json:"totalUsdt"`
	PendingWithdrawals int     `json:"pendingWithdrawals"`
	TotalWithdrawals   int     `json:"totalWithdrawals"`
}

// AdminUseCase gates and serves administrative operations. The configured
// password is hashed at construction; only the hash stays in memory.
type AdminUseCase struct {
	backend      repository.StorageBackend
	passwordHash []byte
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(backend repository.StorageBackend, password string) (*AdminUseCase, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AdminUseCase{backend: backend, passwordHash: hash}, nil
}

// Login verifies the admin password.
func (u *AdminUseCase) Login(password string) error {
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return domainErrors.ErrForbidden
	}
	return nil
}

// EnsureAdmin verifies the user exists and carries the admin role.
func (u *AdminUseCase) EnsureAdmin(ctx context.Context, userID string) error {
	user, err := u.backend.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return domainErrors.ErrForbidden
	}
	return nil
}

// Stats aggregates service-wide totals.
func (u *AdminUseCase) Stats(ctx context.Context) (*AdminStats, error) {
	users, err := u.backend.Users().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	withdrawals, err := u.backend.Withdrawals().List(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{TotalUsers: len(users), TotalWithdrawals: len(withdrawals)}
	var levelSum int64
	for _, user := range users {
		stats.TotalPoints += user.Points
		stats.TotalTasks += user.CompletedTasks
		stats.TotalTON += user.Balance.TON
		stats.TotalCATI += user.Balance.CATI
		stats.TotalUSDT += user.Balance.USDT
		levelSum += int64(user.VIPLevel)
	}
	if len(users) > 0 {
		stats.AverageLevel = float64(levelSum) / float64(len(users))
	}
	for _, w := range withdrawals {
		if w.Status == model.WithdrawalStatusPending {
			stats.PendingWithdrawals++
		}
	}
	return stats, nil
}
