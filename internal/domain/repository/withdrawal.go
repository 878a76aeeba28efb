package repository

import (
	"context"
	"time"

	"github.com/minedash/minedash/internal/domain/model"
)

// WithdrawalRepository owns withdrawal request records. Requests are
// append-only: status transitions mutate, nothing deletes.
type WithdrawalRepository interface {
	Create(ctx context.Context, req *model.WithdrawalRequest) error
	GetByID(ctx context.Context, id string) (*model.WithdrawalRequest, error)
	// List returns requests newest-first by request date. A nil status
	// returns everything.
	List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	// Approve transitions pending -> approved and deducts the requested
	// amount from the user's balance in the same transaction. The balance
	// is re-checked at approval time; insufficient funds fail the
	// transition with ErrInsufficientBalance and leave the request pending.
	// A terminal request fails with ErrAlreadyProcessed.
	Approve(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error)
	// Reject transitions pending -> rejected without touching balances.
	Reject(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error)
}
