package verifier

import (
	"context"
	"time"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
)

var _ IVerifier = (*Verifier)(nil)

// Verifier implements exact-match, all-or-nothing grading
type Verifier struct {
	executor secondary.CodeExecutor
	budget   time.Duration
	logger   primary.Logger
	observer secondary.ExecutionObserver
}

// NewVerifier creates a verifier giving each test case the given budget.
// observer may be nil.
func NewVerifier(
	executor secondary.CodeExecutor,
	budget time.Duration,
	logger primary.Logger,
	observer secondary.ExecutionObserver,
) *Verifier {
	return &Verifier{
		executor: executor,
		budget:   budget,
		logger:   logger,
		observer: observer,
	}
}

// Verify never fails; an empty test-case list can never pass.
func (v *Verifier) Verify(ctx context.Context, testCases []domain.TestCase, language domain.Language, sourceCode string) domain.VerificationOutcome {
	outcome := domain.VerificationOutcome{FailedIndex: -1}
	defer func() {
		if v.observer != nil {
			v.observer.ObserveVerification(language, outcome)
		}
	}()

	if len(testCases) == 0 {
		v.logger.Warn("Refusing to grade without test cases", "language", language)
		return outcome
	}

	for i, tc := range testCases {
		v.logger.Debug("Running test case", "index", i, "of", len(testCases), "language", language)

		res := v.executor.Execute(ctx, language, sourceCode, tc.Input, v.budget)
		outcome.TotalElapsed += res.Elapsed
		outcome.Executed++

		if res.Output != tc.ExpectedOutput {
			failure := res
			outcome.FailedIndex = i
			outcome.Failure = &failure
			v.logger.Debug("Test case failed",
				"index", i,
				"classification", res.Classification,
				"elapsed", res.Elapsed)
			return outcome
		}
	}

	outcome.Correct = true
	v.logger.Debug("All test cases passed", "count", len(testCases), "elapsed", outcome.TotalElapsed)
	return outcome
}
