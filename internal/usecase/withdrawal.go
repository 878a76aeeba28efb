package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

// WithdrawalUseCase manages the withdrawal request ledger.
type WithdrawalUseCase struct {
	backend       repository.StorageBackend
	minWithdrawal float64

	newID func() string
	now   func() time.Time
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(backend repository.StorageBackend, minWithdrawal float64) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		backend:       backend,
		minWithdrawal: minWithdrawal,
		newID:         uuid.NewString,
		now:           time.Now,
	}
}

// Request files a new withdrawal. The balance is checked at request time;
// funds stay on the account until an admin approves, and the approval
// re-checks before deducting.
func (u *WithdrawalUseCase) Request(ctx context.Context, userID string, currency model.Currency, amount float64, walletAddress string) (*model.WithdrawalRequest, error) {
	if !currency.Valid() {
		return nil, domainErrors.ErrInvalidCurrency
	}
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if strings.TrimSpace(walletAddress) == "" {
		return nil, domainErrors.ErrEmptyWalletAddress
	}
	if currency == model.CurrencyCATI && amount < u.minWithdrawal {
		return nil, domainErrors.ErrBelowMinimumWithdrawal
	}

	user, err := u.backend.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Balance.Get(currency) < amount {
		return nil, domainErrors.ErrInsufficientBalance
	}

	req := &model.WithdrawalRequest{
		ID:            u.newID(),
		UserID:        userID,
		Username:      user.Username,
		Currency:      currency,
		Amount:        amount,
		WalletAddress: walletAddress,
		Status:        model.WithdrawalStatusPending,
		RequestDate:   u.now(),
	}
	if err := u.backend.Withdrawals().Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// List returns withdrawal requests newest first, optionally filtered by
// status.
func (u *WithdrawalUseCase) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	if status != nil && !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.backend.Withdrawals().List(ctx, status)
}

// ListByUser returns one user's requests newest first.
func (u *WithdrawalUseCase) ListByUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	all, err := u.backend.Withdrawals().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, w := range all {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// SetStatus resolves a pending request. Approval deducts the funds inside
// the backend and fails with ErrInsufficientBalance when the balance no
// longer covers the amount; rejection leaves balances alone. Either way the
// request becomes terminal exactly once.
func (u *WithdrawalUseCase) SetStatus(ctx context.Context, id string, status model.WithdrawalStatus, processedBy string) (*model.WithdrawalRequest, error) {
	switch status {
	case model.WithdrawalStatusApproved:
		return u.backend.Withdrawals().Approve(ctx, id, processedBy, u.now())
	case model.WithdrawalStatusRejected:
		return u.backend.Withdrawals().Reject(ctx, id, processedBy, u.now())
	default:
		return nil, domainErrors.ErrInvalidStatus
	}
}
