package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/leetle.net/internal/domain"
)

type SubmissionRepository interface {
	// SaveSubmission inserts a new submission; submissions are never updated
	SaveSubmission(ctx context.Context, submission *domain.Submission) error

	// GetSubmission retrieves a submission by ID
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)

	// CountByLanguage counts a user's submissions per language
	CountByLanguage(ctx context.Context, userID int64) (map[domain.Language]int, error)

	// CountDistinctProblems counts the problems a user has attempted
	CountDistinctProblems(ctx context.Context, userID int64) (int, error)

	// CorrectSubmissionTimes lists submitted_at of every correct submission, ascending
	CorrectSubmissionTimes(ctx context.Context, userID int64) ([]time.Time, error)
}
