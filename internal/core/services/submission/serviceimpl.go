package submission

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/core/services/problem"
	"gitlab.com/leetle.net/internal/core/services/stats"
	"gitlab.com/leetle.net/internal/core/services/verifier"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

type SubmissionService struct {
	problems       problem.IProblemService
	verifier       verifier.IVerifier
	submissionRepo secondary.SubmissionRepository
	stats          stats.IStatsService
	slots          *semaphore.Weighted
	logger         primary.Logger
}

// NewSubmissionService creates the orchestrator. At most maxConcurrent
// verifications run at once; values below 1 are treated as 1.
func NewSubmissionService(
	problems problem.IProblemService,
	verifier verifier.IVerifier,
	submissionRepo secondary.SubmissionRepository,
	stats stats.IStatsService,
	maxConcurrent int,
	logger primary.Logger,
) *SubmissionService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &SubmissionService{
		problems:       problems,
		verifier:       verifier,
		submissionRepo: submissionRepo,
		stats:          stats,
		slots:          semaphore.NewWeighted(int64(maxConcurrent)),
		logger:         logger,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, userID int64, languageID, code string) (*domain.SubmissionResult, error) {
	if languageID == "" || code == "" {
		return nil, errs.CodeRequired
	}
	language, err := domain.ParseLanguage(languageID)
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		if err := s.stats.RequireUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	p, err := s.problems.Today(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.Gradable(); err != nil {
		s.logger.Warn("Today's problem cannot be solved", "problemId", p.ID, "error", err)
	}

	s.logger.Info("Grading submission",
		"userId", userID,
		"problemId", p.ID,
		"language", language)

	outcome, err := s.verify(ctx, p, language, code)
	if err != nil {
		return nil, err
	}

	sub := domain.NewSubmission(userID, p.ID, language, code, outcome)
	if err := s.submissionRepo.SaveSubmission(ctx, sub); err != nil {
		s.logger.Error("Failed to save submission", "submissionId", sub.ID, "error", err)
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info("Submission graded",
		"submissionId", sub.ID,
		"correct", outcome.Correct,
		"executed", outcome.Executed,
		"execTime", sub.ExecTimeSeconds)

	if outcome.Correct {
		s.recordSuccess(ctx, userID, language)
	}

	return &domain.SubmissionResult{
		SubmissionID:  sub.ID,
		ProblemID:     p.ID,
		Correct:       outcome.Correct,
		ExecutionTime: sub.ExecTimeSeconds,
	}, nil
}

func (s *SubmissionService) verify(ctx context.Context, p *domain.Problem, language domain.Language, code string) (domain.VerificationOutcome, error) {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return domain.VerificationOutcome{}, fmt.Errorf("failed to acquire verification slot: %w", err)
	}
	defer s.slots.Release(1)

	return s.verifier.Verify(ctx, p.TestCases, language, code), nil
}

// recordSuccess never fails the submission; the verdict is already persisted
func (s *SubmissionService) recordSuccess(ctx context.Context, userID int64, language domain.Language) {
	if s.stats == nil {
		return
	}
	if err := s.stats.RecordSuccess(ctx, userID, language); err != nil {
		s.logger.Error("Failed to update user stats", "userId", userID, "error", err)
		return
	}
	if _, err := s.stats.AwardAchievements(ctx, userID); err != nil {
		s.logger.Error("Failed to award achievements", "userId", userID, "error", err)
	}
}
