package errors

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidCurrency        = errors.New("invalid currency")
	ErrEmptyWalletAddress     = errors.New("empty wallet address")
	ErrBelowMinimumWithdrawal = errors.New("amount below withdrawal minimum")
	ErrAlreadyProcessed       = errors.New("request already processed")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrUnknownAction          = errors.New("unknown action")
	ErrActionOnCooldown       = errors.New("action on cooldown")
	ErrForbidden              = errors.New("forbidden")
)
