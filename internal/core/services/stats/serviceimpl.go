package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/static/errs"
)

var _ IStatsService = (*StatsService)(nil)

type StatsService struct {
	statsRepo      secondary.StatsRepository
	submissionRepo secondary.SubmissionRepository
	logger         primary.Logger
	now            func() time.Time
}

func NewStatsService(
	statsRepo secondary.StatsRepository,
	submissionRepo secondary.SubmissionRepository,
	logger primary.Logger,
) *StatsService {
	return &StatsService{
		statsRepo:      statsRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// SetClock overrides the time source used for streak days
func (s *StatsService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *StatsService) RequireUser(ctx context.Context, userID int64) error {
	streak, err := s.statsRepo.GetStreak(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if streak == nil {
		return fmt.Errorf("%w: %d", errs.UnknownUser, userID)
	}
	return nil
}

// RecordSuccess derives the favourite language, attempted problems and
// current streak from persisted submissions, then bumps the counters with
// atomic updates so concurrent solves by one user are never lost.
func (s *StatsService) RecordSuccess(ctx context.Context, userID int64, language domain.Language) error {
	now := s.now()

	if err := s.RequireUser(ctx, userID); err != nil {
		return err
	}

	counts, err := s.submissionRepo.CountByLanguage(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count submissions by language: %w", err)
	}
	attempted, err := s.submissionRepo.CountDistinctProblems(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count attempted problems: %w", err)
	}
	solved, err := s.submissionRepo.CorrectSubmissionTimes(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list correct submissions: %w", err)
	}

	stats, err := s.statsRepo.IncrementSolved(ctx, userID, string(FavoriteLanguage(counts, language)), attempted, now.UTC())
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	streak, err := s.statsRepo.AdvanceStreak(ctx, userID, CurrentStreak(solved, now), startOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	if streak == nil {
		return fmt.Errorf("%w: %d", errs.UnknownUser, userID)
	}

	s.logger.Info("Recorded solve",
		"userId", userID,
		"currentStreak", streak.CurrentStreak,
		"totalSolutions", streak.TotalSolutions,
		"successRate", stats.SuccessRate)

	return nil
}

func (s *StatsService) AwardAchievements(ctx context.Context, userID int64) ([]*domain.Achievement, error) {
	streak, err := s.statsRepo.GetStreak(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	if streak == nil {
		return nil, fmt.Errorf("%w: %d", errs.UnknownUser, userID)
	}

	progress := domain.UserProgress{
		CurrentStreak:  streak.CurrentStreak,
		TotalSolutions: streak.TotalSolutions,
	}
	stats, err := s.statsRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	if stats != nil {
		progress.SuccessRate = stats.SuccessRate
	}

	achievements, err := s.statsRepo.ListActiveAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	earnedIDs, err := s.statsRepo.EarnedAchievementIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earned achievements: %w", err)
	}
	earned := make(map[int64]struct{}, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = struct{}{}
	}

	var awarded []*domain.Achievement
	for _, a := range achievements {
		if _, ok := earned[a.ID]; ok {
			continue
		}
		criteria, err := domain.ParseCriteria(a.Criteria)
		if err != nil {
			s.logger.Warn("Skipping achievement with bad criteria", "achievementId", a.ID, "error", err)
			continue
		}
		if !criteria.Met(progress) {
			continue
		}
		if err := s.statsRepo.AwardAchievement(ctx, userID, a.ID); err != nil {
			return awarded, fmt.Errorf("failed to award achievement %d: %w", a.ID, err)
		}
		s.logger.Info("Achievement awarded", "userId", userID, "achievement", a.Name)
		awarded = append(awarded, a)
	}

	return awarded, nil
}

// CurrentStreak counts consecutive calendar days, ending today, that contain at
// least one solve. Days are compared in today's location.
func CurrentStreak(solved []time.Time, today time.Time) int {
	days := make(map[time.Time]struct{}, len(solved))
	for _, t := range solved {
		days[startOfDay(t.In(today.Location()))] = struct{}{}
	}

	streak := 0
	for day := startOfDay(today); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
	}
}

// FavoriteLanguage picks the most used language; ties go to the lexically smaller
// name and an empty tally falls back to current.
func FavoriteLanguage(counts map[domain.Language]int, current domain.Language) domain.Language {
	if len(counts) == 0 {
		return current
	}
	langs := make([]domain.Language, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })

	best := langs[0]
	for _, l := range langs[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
