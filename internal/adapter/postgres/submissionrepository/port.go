package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
	querybuilder "gitlab.com/leetle.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository persists submissions to PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	qb     querybuilder.QueryBuilder
}

func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		qb:     querybuilder.NewQueryBuilder(schema),
	}
}

func (r *SubmissionRepository) SaveSubmission(ctx context.Context, s *domain.Submission) error {
	tbl := domain.GetSubmissionTable()
	query, args, err := r.qb.Insert(r.qb.Table(tbl.TableName())).
		Columns(tbl.ID, tbl.UserID, tbl.ProblemID, tbl.Language, tbl.Code, tbl.ExecTime, tbl.IsCorrect, tbl.SubmittedAt).
		Values(s.ID, s.UserID, s.ProblemID, s.Language, s.Code, s.ExecTimeSeconds, s.IsCorrect, s.SubmittedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission", "submissionId", s.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := r.qb.Select(tbl.ID, tbl.UserID, tbl.ProblemID, tbl.Language, tbl.Code, tbl.ExecTime, tbl.IsCorrect, tbl.SubmittedAt).
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.ID: submissionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var s domain.Submission
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &s, nil
}

func (r *SubmissionRepository) CountByLanguage(ctx context.Context, userID int64) (map[domain.Language]int, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := r.qb.Select(tbl.Language, "COUNT(*) AS n").
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.UserID: userID}).
		GroupBy(tbl.Language).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []struct {
		Language domain.Language `db:"language"`
		N        int             `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to count submissions by language", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to count submissions by language: %w", err)
	}

	counts := make(map[domain.Language]int, len(rows))
	for _, row := range rows {
		counts[row.Language] = row.N
	}
	return counts, nil
}

func (r *SubmissionRepository) CountDistinctProblems(ctx context.Context, userID int64) (int, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := r.qb.Select(fmt.Sprintf("COUNT(DISTINCT %s)", tbl.ProblemID)).
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.UserID: userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		r.logger.Error("Failed to count attempted problems", "userId", userID, "error", err)
		return 0, fmt.Errorf("failed to count attempted problems: %w", err)
	}
	return n, nil
}

func (r *SubmissionRepository) CorrectSubmissionTimes(ctx context.Context, userID int64) ([]time.Time, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := r.qb.Select(tbl.SubmittedAt).
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.UserID: userID, tbl.IsCorrect: true}).
		OrderBy(tbl.SubmittedAt + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var times []time.Time
	if err := r.db.SelectContext(ctx, &times, query, args...); err != nil {
		r.logger.Error("Failed to list correct submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list correct submissions: %w", err)
	}
	return times, nil
}
