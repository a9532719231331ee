package secondary

import (
	"context"
	"time"

	"gitlab.com/leetle.net/internal/domain"
)

type ProblemRepository interface {
	// CountActiveProblems counts problems with is_active set
	CountActiveProblems(ctx context.Context) (int, error)

	// GetActiveProblemAt returns the active problem at 1-based position ordered by id
	GetActiveProblemAt(ctx context.Context, position int) (*domain.Problem, error)

	// GetProblem retrieves a problem by ID
	GetProblem(ctx context.Context, problemID int64) (*domain.Problem, error)
}

type ProblemCache interface {
	// GetProblem returns nil, nil on a cache miss
	GetProblem(ctx context.Context, key string) (*domain.Problem, error)

	SetProblem(ctx context.Context, key string, problem *domain.Problem, ttl time.Duration) error
}
