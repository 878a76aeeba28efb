package repository

import (
	"context"
	"time"
)

// GamePlayRepository tracks per-day action completion counts.
type GamePlayRepository interface {
	// Record increments the play counter for (userID, actionID, day) and
	// returns the new count.
	Record(ctx context.Context, userID, actionID string, day time.Time) (int, error)
	// Get returns the recorded count, zero when nothing was recorded.
	Get(ctx context.Context, userID, actionID string, day time.Time) (int, error)
}
