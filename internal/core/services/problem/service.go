package problem

import (
	"context"

	"gitlab.com/leetle.net/internal/domain"
)

// IProblemService resolves the daily challenge
type IProblemService interface {
	// Today returns the problem of the day, errs.NoProblemToday when none is active
	Today(ctx context.Context) (*domain.Problem, error)

	// GetDailyView returns the public fields of today's problem
	GetDailyView(ctx context.Context) (*domain.ProblemView, error)
}
