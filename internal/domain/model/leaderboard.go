package model

// LeaderboardMetric selects the ranking dimension.
type LeaderboardMetric string

const (
	LeaderboardPoints   LeaderboardMetric = "points"
	LeaderboardEarnings LeaderboardMetric = "earnings"
	LeaderboardStreak   LeaderboardMetric = "streak"
)

// Valid reports whether the metric is supported.
func (m LeaderboardMetric) Valid() bool {
	switch m {
	case LeaderboardPoints, LeaderboardEarnings, LeaderboardStreak:
		return true
	}
	return false
}

// LeaderboardEntry is one ranked row. Which value fields are meaningful
// depends on the metric; Points and VIPLevel are always populated for
// display context.
type LeaderboardEntry struct {
	UserID    string
	Username  string
	Avatar    string
	Points    int64
	VIPLevel  int
	DayStreak int
	TON       float64
}
