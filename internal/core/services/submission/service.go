package submission

import (
	"context"

	"gitlab.com/leetle.net/internal/domain"
)

// ISubmissionService grades and records attempts at today's problem
type ISubmissionService interface {
	// Submit verifies code against today's problem and persists the attempt.
	// An incorrect solution is a result, not an error.
	Submit(ctx context.Context, userID int64, languageID, code string) (*domain.SubmissionResult, error)
}
