package stats

import (
	"context"

	"gitlab.com/leetle.net/internal/domain"
)

// IStatsService maintains per-user counters, streaks and achievements
type IStatsService interface {
	// RequireUser fails with errs.UnknownUser when no user row exists
	RequireUser(ctx context.Context, userID int64) error

	// RecordSuccess updates counters and streaks after a correct submission
	RecordSuccess(ctx context.Context, userID int64, language domain.Language) error

	// AwardAchievements grants every active achievement the user now qualifies for
	// and returns the newly awarded ones
	AwardAchievements(ctx context.Context, userID int64) ([]*domain.Achievement, error)
}
