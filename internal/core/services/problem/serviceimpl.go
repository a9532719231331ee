package problem

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/static/errs"
)

const (
	cacheKeyPrefix = "problem:today:"
	maxCacheTTL    = 24 * time.Hour
)

var _ IProblemService = (*ProblemService)(nil)

type ProblemService struct {
	problemRepo secondary.ProblemRepository
	cache       secondary.ProblemCache
	logger      primary.Logger
	now         func() time.Time
}

// NewProblemService creates a problem service. cache may be nil.
func NewProblemService(
	problemRepo secondary.ProblemRepository,
	cache secondary.ProblemCache,
	logger primary.Logger,
) *ProblemService {
	return &ProblemService{
		problemRepo: problemRepo,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock overrides the time source used to pick the day
func (s *ProblemService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// DailyPosition maps a day of month onto a 1-based position among count active problems
func DailyPosition(day, count int) int {
	if count <= 0 {
		return 0
	}
	pos := day % count
	if pos == 0 {
		pos = count
	}
	return pos
}

// CacheKey is the redis key holding the problem picked for the given day
func CacheKey(day time.Time) string {
	return cacheKeyPrefix + day.Format(time.DateOnly)
}

func (s *ProblemService) Today(ctx context.Context) (*domain.Problem, error) {
	now := s.now()
	key := CacheKey(now)

	if s.cache != nil {
		cached, err := s.cache.GetProblem(ctx, key)
		if err != nil {
			s.logger.Warn("Problem cache read failed", "key", key, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	count, err := s.problemRepo.CountActiveProblems(ctx)
	if err != nil {
		s.logger.Error("Failed to count active problems", "error", err)
		return nil, fmt.Errorf("failed to count active problems: %w", err)
	}
	if count == 0 {
		return nil, errs.NoProblemToday
	}

	pos := DailyPosition(now.Day(), count)
	p, err := s.problemRepo.GetActiveProblemAt(ctx, pos)
	if err != nil {
		s.logger.Error("Failed to get daily problem", "position", pos, "error", err)
		return nil, fmt.Errorf("failed to get daily problem: %w", err)
	}
	if p == nil {
		return nil, errs.NoProblemToday
	}

	s.logger.Debug("Resolved daily problem", "problemId", p.ID, "position", pos, "of", count)

	if s.cache != nil {
		if err := s.cache.SetProblem(ctx, key, p, untilEndOfDay(now)); err != nil {
			s.logger.Warn("Problem cache write failed", "key", key, "error", err)
		}
	}

	return p, nil
}

func (s *ProblemService) GetDailyView(ctx context.Context) (*domain.ProblemView, error) {
	p, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	view := p.View()
	return &view, nil
}

func untilEndOfDay(now time.Time) time.Duration {
	y, m, d := now.Date()
	ttl := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Sub(now)
	if ttl <= 0 || ttl > maxCacheTTL {
		return maxCacheTTL
	}
	return ttl
}
