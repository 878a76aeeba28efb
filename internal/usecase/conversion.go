package usecase

import (
	"context"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
	"github.com/minedash/minedash/internal/reward"
)

// ConversionUseCase exchanges points for currency and reward packs.
type ConversionUseCase struct {
	backend repository.StorageBackend
}

// NewConversionUseCase constructs ConversionUseCase.
func NewConversionUseCase(backend repository.StorageBackend) *ConversionUseCase {
	return &ConversionUseCase{backend: backend}
}

// ConvertPoints exchanges points for CATI at the fixed rate. Fractional
// CATI is allowed, balances are floating point.
func (u *ConversionUseCase) ConvertPoints(ctx context.Context, userID string, points int64) (*model.User, error) {
	if points <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	user, err := u.backend.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Points < points {
		return nil, domainErrors.ErrInsufficientBalance
	}

	cati := float64(points) / float64(reward.ConversionRate)
	patch := model.UserPatch{
		Points: model.Int64(user.Points - points),
		Balance: &model.BalancePatch{
			CATI: model.Float64(user.Balance.CATI + cati),
		},
	}
	return u.backend.Users().ApplyPatch(ctx, userID, patch)
}

// ClaimPack buys a reward pack with points and credits its bundle.
func (u *ConversionUseCase) ClaimPack(ctx context.Context, userID string, packID int) (*model.User, error) {
	pack, ok := reward.PackByID(packID)
	if !ok {
		return nil, domainErrors.ErrUnknownAction
	}

	user, err := u.backend.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Points < pack.Cost {
		return nil, domainErrors.ErrInsufficientBalance
	}

	patch := model.UserPatch{
		Points:     model.Int64(user.Points - pack.Cost),
		GiftPoints: model.Int64(user.GiftPoints + pack.GiftPoints),
		Balance: &model.BalancePatch{
			TON:  model.Float64(user.Balance.TON + pack.TON),
			CATI: model.Float64(user.Balance.CATI + pack.CATI),
			USDT: model.Float64(user.Balance.USDT + pack.USDT),
		},
	}
	return u.backend.Users().ApplyPatch(ctx, userID, patch)
}

// Packs returns the purchasable pack table.
func (u *ConversionUseCase) Packs() []reward.Pack {
	return reward.Packs()
}
