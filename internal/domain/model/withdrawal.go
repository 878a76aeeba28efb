package model

import "time"

// WithdrawalStatus describes the request lifecycle.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

// WithdrawalRequest is a user's ask to pay out balance to an external
// wallet. Identity fields are immutable; only Status and the processed
// stamps change, exactly once, when an admin approves or rejects.
type WithdrawalRequest struct {
	ID            string
	UserID        string
	Username      string
	Currency      Currency
	Amount        float64
	WalletAddress string
	Status        WithdrawalStatus
	RequestDate   time.Time
	ProcessedDate *time.Time
	ProcessedBy   string
}
