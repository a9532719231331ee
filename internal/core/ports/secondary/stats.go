package secondary

import (
	"context"
	"time"

	"gitlab.com/leetle.net/internal/domain"
)

type StatsRepository interface {
	// GetStats returns nil, nil when the user has no stats row yet
	GetStats(ctx context.Context, userID int64) (*domain.UserStats, error)
	// IncrementSolved adds one attempt and one correct answer in a single
	// statement, recomputes the success rate from the stored counters and
	// overwrites the favourite language and attempted-problem count.
	// It returns the stored row.
	IncrementSolved(ctx context.Context, userID int64, favoriteLanguage string, problemsAttempted int, at time.Time) (*domain.UserStats, error)

	// GetStreak returns nil, nil when the user does not exist
	GetStreak(ctx context.Context, userID int64) (*domain.UserStreak, error)
	// AdvanceStreak sets the current streak, raises the longest streak to it
	// if needed and adds one solution, atomically. Returns nil, nil when the
	// user does not exist.
	AdvanceStreak(ctx context.Context, userID int64, currentStreak int, day time.Time) (*domain.UserStreak, error)

	ListActiveAchievements(ctx context.Context) ([]*domain.Achievement, error)
	EarnedAchievementIDs(ctx context.Context, userID int64) ([]int64, error)
	AwardAchievement(ctx context.Context, userID, achievementID int64) error
}
