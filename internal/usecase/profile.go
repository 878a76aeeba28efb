package usecase

import (
	"context"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

// ProfileUseCase handles user lifecycle and profile state.
type ProfileUseCase struct {
	backend repository.StorageBackend
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(backend repository.StorageBackend) *ProfileUseCase {
	return &ProfileUseCase{backend: backend}
}

// EnsureUser creates the user on first contact or refreshes the display
// fields of an existing one. Progress counters are never touched.
func (u *ProfileUseCase) EnsureUser(ctx context.Context, profile model.Profile) (*model.User, error) {
	if profile.UserID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.backend.Users().Upsert(ctx, profile)
}

// GetUser returns the user aggregate.
func (u *ProfileUseCase) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return u.backend.Users().GetByID(ctx, userID)
}

// UpdateUser merges the set fields of the patch into the stored record.
func (u *ProfileUseCase) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	if patch.IsZero() {
		return u.backend.Users().GetByID(ctx, userID)
	}
	return u.backend.Users().ApplyPatch(ctx, userID, patch)
}

// AddPoints shifts the points counter by delta, floored at zero.
func (u *ProfileUseCase) AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error) {
	return u.backend.Users().AddPoints(ctx, userID, delta)
}

// SetBalance overwrites a single currency amount.
func (u *ProfileUseCase) SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error {
	if !currency.Valid() {
		return domainErrors.ErrInvalidCurrency
	}
	if amount < 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.backend.Users().SetBalance(ctx, userID, currency, amount)
}

// ListUsers enumerates every stored user.
func (u *ProfileUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return u.backend.Users().ListAll(ctx)
}

// DeleteUser removes the user and their play records.
func (u *ProfileUseCase) DeleteUser(ctx context.Context, userID string) error {
	return u.backend.Users().Delete(ctx, userID)
}
