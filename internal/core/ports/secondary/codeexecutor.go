package secondary

import (
	"context"
	"time"

	"gitlab.com/leetle.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs sourceCode once with stdin attached; failures are classified, never returned
	Execute(ctx context.Context, language domain.Language, sourceCode, stdin string, budget time.Duration) domain.ExecutionResult
}

// ExecutionObserver receives every run and verdict, e.g. for metrics
type ExecutionObserver interface {
	ObserveRun(language domain.Language, result domain.ExecutionResult)
	ObserveVerification(language domain.Language, outcome domain.VerificationOutcome)
}
