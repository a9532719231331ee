package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one persisted attempt at a problem
type Submission struct {
	ID              uuid.UUID `db:"id"`
	UserID          int64     `db:"user_id"`
	ProblemID       int64     `db:"problem_id"`
	Language        Language  `db:"language"`
	Code            string    `db:"code"`
	ExecTimeSeconds float64   `db:"exec_time"`
	IsCorrect       bool      `db:"is_correct"`
	SubmittedAt     time.Time `db:"submitted_at"`
}

// NewSubmission creates a new submission record from a finished verification
func NewSubmission(userID, problemID int64, language Language, code string, outcome VerificationOutcome) *Submission {
	return &Submission{
		ID:              uuid.New(),
		UserID:          userID,
		ProblemID:       problemID,
		Language:        language,
		Code:            code,
		ExecTimeSeconds: outcome.TotalElapsed.Seconds(),
		IsCorrect:       outcome.Correct,
		SubmittedAt:     time.Now().UTC(),
	}
}

// SubmissionResult is what the orchestrator hands back to the transport layer
type SubmissionResult struct {
	SubmissionID  uuid.UUID
	ProblemID     int64
	Correct       bool
	ExecutionTime float64
}

type SubmissionTable struct {
	ID          string
	UserID      string
	ProblemID   string
	Language    string
	Code        string
	ExecTime    string
	IsCorrect   string
	SubmittedAt string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:          "id",
		UserID:      "user_id",
		ProblemID:   "problem_id",
		Language:    "language",
		Code:        "code",
		ExecTime:    "exec_time",
		IsCorrect:   "is_correct",
		SubmittedAt: "submitted_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submission"
}
