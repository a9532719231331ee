package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
	querybuilder "gitlab.com/leetle.net/internal/utils"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository reads problems from PostgreSQL
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	qb     querybuilder.QueryBuilder
}

func NewProblemRepository(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
		qb:     querybuilder.NewQueryBuilder(schema),
	}
}

// problemRow mirrors the problem table; test cases stay JSON text until decoded
type problemRow struct {
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Difficulty    sql.NullString `db:"difficulty"`
	InputExample  string         `db:"input_example"`
	OutputExample string         `db:"output_example"`
	TestCases     string         `db:"test_cases"`
	HintText      sql.NullString `db:"hint_text"`
	FullSolution  sql.NullString `db:"full_solution"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (r problemRow) toDomain() (*domain.Problem, error) {
	cases, err := domain.ParseTestCases([]byte(r.TestCases))
	if err != nil {
		return nil, fmt.Errorf("problem %d: %w", r.ID, err)
	}
	p := &domain.Problem{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Difficulty:    domain.ParseDifficulty(r.Difficulty.String),
		InputExample:  r.InputExample,
		OutputExample: r.OutputExample,
		TestCases:     cases,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
	}
	if r.HintText.Valid {
		p.HintText = &r.HintText.String
	}
	if r.FullSolution.Valid {
		p.FullSolution = &r.FullSolution.String
	}
	return p, nil
}

func columns() []string {
	tbl := domain.GetProblemTable()
	return []string{
		tbl.ID, tbl.Title, tbl.Description, tbl.Difficulty,
		tbl.InputExample, tbl.OutputExample, tbl.TestCases,
		tbl.HintText, tbl.FullSolution, tbl.IsActive, tbl.CreatedAt,
	}
}

func (r *ProblemRepository) CountActiveProblems(ctx context.Context) (int, error) {
	tbl := domain.GetProblemTable()
	query, args, err := r.qb.Select("COUNT(*)").
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.IsActive: true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.Error("Failed to count active problems", "error", err)
		return 0, fmt.Errorf("failed to count active problems: %w", err)
	}
	return count, nil
}

func (r *ProblemRepository) GetActiveProblemAt(ctx context.Context, position int) (*domain.Problem, error) {
	if position < 1 {
		return nil, nil
	}
	tbl := domain.GetProblemTable()
	query, args, err := r.qb.Select(columns()...).
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.IsActive: true}).
		OrderBy(tbl.ID + " ASC").
		Limit(1).
		Offset(uint64(position - 1)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build problem query: %w", err)
	}
	return r.getOne(ctx, query, args...)
}

func (r *ProblemRepository) GetProblem(ctx context.Context, problemID int64) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args, err := r.qb.Select(columns()...).
		From(r.qb.Table(tbl.TableName())).
		Where(sq.Eq{tbl.ID: problemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build problem query: %w", err)
	}
	return r.getOne(ctx, query, args...)
}

func (r *ProblemRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Problem, error) {
	var row problemRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get problem", "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	p, err := row.toDomain()
	if err != nil {
		r.logger.Error("Failed to decode problem", "problemId", row.ID, "error", err)
		return nil, err
	}
	return p, nil
}
