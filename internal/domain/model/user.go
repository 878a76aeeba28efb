package model

import "time"

// Currency identifies one of the tokens a user can hold.
type Currency string

const (
	CurrencyTON  Currency = "ton"
	CurrencyCATI Currency = "cati"
	CurrencyUSDT Currency = "usdt"
)

// Currencies lists every supported currency in a stable order.
func Currencies() []Currency {
	return []Currency{CurrencyTON, CurrencyCATI, CurrencyUSDT}
}

// Valid reports whether the currency code is supported.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyTON, CurrencyCATI, CurrencyUSDT:
		return true
	}
	return false
}

// Balance holds per-currency amounts. Amounts are never negative.
type Balance struct {
	TON  float64
	CATI float64
	USDT float64
}

// Get returns the amount for the given currency.
func (b Balance) Get(c Currency) float64 {
	switch c {
	case CurrencyTON:
		return b.TON
	case CurrencyCATI:
		return b.CATI
	case CurrencyUSDT:
		return b.USDT
	}
	return 0
}

// Set overwrites the amount for the given currency.
func (b *Balance) Set(c Currency, amount float64) {
	switch c {
	case CurrencyTON:
		b.TON = amount
	case CurrencyCATI:
		b.CATI = amount
	case CurrencyUSDT:
		b.USDT = amount
	}
}

// Profile carries the display attributes supplied at account creation.
// IsAdmin is decided once, by the role policy of the caller, and is
// immutable afterwards.
type Profile struct {
	UserID   string
	Username string
	Email    string
	Avatar   string
	IsAdmin  bool
}

// User is the aggregate root of the reward game state.
type User struct {
	UserID         string
	Username       string
	Email          string
	Avatar         string
	IsAdmin        bool
	Points         int64
	VIPLevel       int
	Exp            int64
	MaxExp         int64
	GiftPoints     int64
	CompletedTasks int64
	DayStreak      int
	LastClaim      *time.Time
	Balance        Balance
	CreatedAt      time.Time
}

// InitialMaxExp is the experience threshold of a freshly created account.
const InitialMaxExp = 1000

// NewUser builds a user with zeroed counters from a profile.
func NewUser(p Profile) *User {
	return &User{
		UserID:   p.UserID,
		Username: p.Username,
		Email:    p.Email,
		Avatar:   p.Avatar,
		IsAdmin:  p.IsAdmin,
		VIPLevel: 1,
		MaxExp:   InitialMaxExp,
	}
}
