package model

import "time"

// GamePlay counts completions of one action by one user on one calendar
// day. The admin dashboard uses it to tell active users apart, and purging
// a user removes these rows with the account.
type GamePlay struct {
	UserID   string
	ActionID string
	PlayDate time.Time
	Count    int
}

// Day truncates t to its calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
