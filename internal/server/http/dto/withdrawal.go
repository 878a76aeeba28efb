package dto

import (
	"time"

	"github.com/minedash/minedash/internal/domain/model"
)

// WithdrawRequest files a new withdrawal.
type WithdrawRequest struct {
	Currency      string  `json:"currency" binding:"required"`
	Amount        float64 `json:"amount"`
	WalletAddress string  `json:"walletAddress"`
}

// ResolveWithdrawalRequest settles a pending withdrawal.
type ResolveWithdrawalRequest struct {
	Status string `json:"status" binding:"required"`
}

// WithdrawalResponse is one ledger entry.
type WithdrawalResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Username      string     `json:"username"`
	Currency      string     `json:"currency"`
	Amount        float64    `json:"amount"`
	WalletAddress string     `json:"walletAddress"`
	Status        string     `json:"status"`
	RequestDate   time.Time  `json:"requestDate"`
	ProcessedDate *time.Time `json:"processedDate,omitempty"`
	ProcessedBy   string     `json:"processedBy,omitempty"`
}

// NewWithdrawalResponse maps a withdrawal request to its wire shape.
func NewWithdrawalResponse(w *model.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            w.ID,
		UserID:        w.UserID,
		Username:      w.Username,
		Currency:      string(w.Currency),
		Amount:        w.Amount,
		WalletAddress: w.WalletAddress,
		Status:        string(w.Status),
		RequestDate:   w.RequestDate,
		ProcessedDate: w.ProcessedDate,
		ProcessedBy:   w.ProcessedBy,
	}
}
