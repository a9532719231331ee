package verifier

import (
	"context"

	"gitlab.com/leetle.net/internal/domain"
)

// IVerifier grades a source against a problem's test cases
type IVerifier interface {
	// Verify runs every test case in order and stops at the first mismatch
	Verify(ctx context.Context, testCases []domain.TestCase, language domain.Language, sourceCode string) domain.VerificationOutcome
}
