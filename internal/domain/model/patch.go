package model

import "time"

// BalancePatch updates individual currency amounts without touching
// siblings.
type BalancePatch struct {
	TON  *float64
	CATI *float64
	USDT *float64
}

// Set records an absolute amount for the given currency.
func (p *BalancePatch) Set(c Currency, amount float64) {
	v := amount
	switch c {
	case CurrencyTON:
		p.TON = &v
	case CurrencyCATI:
		p.CATI = &v
	case CurrencyUSDT:
		p.USDT = &v
	}
}

// UserPatch is a merge patch over the user aggregate. Only non-nil fields
// are applied, so two patches over disjoint fields can be applied in either
// order with the same result. Every state mutation in the system is
// expressed as a patch; whole-record overwrites would let one action's
// completion clobber another's.
type UserPatch struct {
	Username       *string
	Email          *string
	Avatar         *string
	Points         *int64
	VIPLevel       *int
	Exp            *int64
	MaxExp         *int64
	GiftPoints     *int64
	CompletedTasks *int64
	DayStreak      *int
	LastClaim      *time.Time
	Balance        *BalancePatch
}

// Apply merges the set fields of the patch into the user.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Points != nil {
		u.Points = *p.Points
	}
	if p.VIPLevel != nil {
		u.VIPLevel = *p.VIPLevel
	}
	if p.Exp != nil {
		u.Exp = *p.Exp
	}
	if p.MaxExp != nil {
		u.MaxExp = *p.MaxExp
	}
	if p.GiftPoints != nil {
		u.GiftPoints = *p.GiftPoints
	}
	if p.CompletedTasks != nil {
		u.CompletedTasks = *p.CompletedTasks
	}
	if p.DayStreak != nil {
		u.DayStreak = *p.DayStreak
	}
	if p.LastClaim != nil {
		t := *p.LastClaim
		u.LastClaim = &t
	}
	if p.Balance != nil {
		if p.Balance.TON != nil {
			u.Balance.TON = *p.Balance.TON
		}
		if p.Balance.CATI != nil {
			u.Balance.CATI = *p.Balance.CATI
		}
		if p.Balance.USDT != nil {
			u.Balance.USDT = *p.Balance.USDT
		}
	}
}

// IsZero reports whether the patch sets nothing.
func (p UserPatch) IsZero() bool {
	return p.Username == nil && p.Email == nil && p.Avatar == nil &&
		p.Points == nil && p.VIPLevel == nil && p.Exp == nil &&
		p.MaxExp == nil && p.GiftPoints == nil && p.CompletedTasks == nil &&
		p.DayStreak == nil && p.LastClaim == nil && p.Balance == nil
}

// Helpers to build pointer fields without temporary variables at call sites.

func Int64(v int64) *int64          { return &v }
func Int(v int) *int                { return &v }
func Float64(v float64) *float64    { return &v }
func String(v string) *string       { return &v }
func Time(v time.Time) *time.Time   { return &v }
