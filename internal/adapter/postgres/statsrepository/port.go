package statsrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
	querybuilder "gitlab.com/leetle.net/internal/utils"
)

const (
	usersTable           = "users"
	userStatsTable       = "user_stats"
	achievementTable     = "achievement"
	userAchievementTable = "user_achievement"
)

var statsColumns = []string{
	"user_id", "total_attempts", "total_correct", "success_rate",
	"favorite_language", "problems_attempted", "updated_at",
}

var streakColumns = []string{
	"id", "current_streak", "longest_streak", "total_solutions", "last_submission_date",
}

var _ secondary.StatsRepository = (*StatsRepository)(nil)

// StatsRepository stores counters, streaks and achievements in PostgreSQL
type StatsRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	qb     querybuilder.QueryBuilder
}

func NewStatsRepository(db *sqlx.DB, logger primary.Logger, schema string) *StatsRepository {
	return &StatsRepository{
		db:     db,
		logger: logger,
		qb:     querybuilder.NewQueryBuilder(schema),
	}
}

func (r *StatsRepository) GetStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	query, args, err := r.qb.Select(statsColumns...).
		From(r.qb.Table(userStatsTable)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var stats domain.UserStats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user stats", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return &stats, nil
}

func (r *StatsRepository) IncrementSolved(
	ctx context.Context,
	userID int64,
	favoriteLanguage string,
	problemsAttempted int,
	at time.Time,
) (*domain.UserStats, error) {
	query, args, err := r.qb.Insert(r.qb.Table(userStatsTable)+" AS us").
		Columns(statsColumns...).
		Values(userID, 1, 1, 100.0, favoriteLanguage, problemsAttempted, at).
		Suffix(querybuilder.OnConflictUpdate([]string{"user_id"}, "favorite_language", "problems_attempted", "updated_at") +
			", total_attempts = us.total_attempts + 1" +
			", total_correct = us.total_correct + 1" +
			", success_rate = (us.total_correct + 1) * 100.0 / (us.total_attempts + 1)").
		Suffix("RETURNING " + strings.Join(statsColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert: %w", err)
	}

	var stats domain.UserStats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		r.logger.Error("Failed to increment user stats", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to increment user stats: %w", err)
	}
	return &stats, nil
}

func (r *StatsRepository) GetStreak(ctx context.Context, userID int64) (*domain.UserStreak, error) {
	query, args, err := r.qb.Select(streakColumns...).
		From(r.qb.Table(usersTable)).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var streak domain.UserStreak
	if err := r.db.GetContext(ctx, &streak, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user streak", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get user streak: %w", err)
	}
	return &streak, nil
}

func (r *StatsRepository) AdvanceStreak(ctx context.Context, userID int64, currentStreak int, day time.Time) (*domain.UserStreak, error) {
	query, args, err := r.qb.Update(r.qb.Table(usersTable)).
		Set("current_streak", currentStreak).
		Set("longest_streak", sq.Expr("GREATEST(longest_streak, ?)", currentStreak)).
		Set("total_solutions", sq.Expr("total_solutions + 1")).
		Set("last_submission_date", day).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + strings.Join(streakColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update: %w", err)
	}

	var streak domain.UserStreak
	if err := r.db.GetContext(ctx, &streak, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Streak update matched no user", "userId", userID)
			return nil, nil
		}
		r.logger.Error("Failed to advance user streak", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to advance user streak: %w", err)
	}
	return &streak, nil
}

func (r *StatsRepository) ListActiveAchievements(ctx context.Context) ([]*domain.Achievement, error) {
	query, args, err := r.qb.Select("id", "name", "description", "criteria", "icon", "points", "is_active").
		From(r.qb.Table(achievementTable)).
		Where(sq.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var achievements []*domain.Achievement
	if err := r.db.SelectContext(ctx, &achievements, query, args...); err != nil {
		r.logger.Error("Failed to list achievements", "error", err)
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

func (r *StatsRepository) EarnedAchievementIDs(ctx context.Context, userID int64) ([]int64, error) {
	query, args, err := r.qb.Select("achievement_id").
		From(r.qb.Table(userAchievementTable)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		r.logger.Error("Failed to list earned achievements", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list earned achievements: %w", err)
	}
	return ids, nil
}

func (r *StatsRepository) AwardAchievement(ctx context.Context, userID, achievementID int64) error {
	query, args, err := r.qb.Insert(r.qb.Table(userAchievementTable)).
		Columns("user_id", "achievement_id", "earned_at").
		Values(userID, achievementID, time.Now().UTC()).
		Suffix(querybuilder.OnConflictDoNothing("user_id", "achievement_id")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to award achievement", "userId", userID, "achievementId", achievementID, "error", err)
		return fmt.Errorf("failed to award achievement: %w", err)
	}
	return nil
}
