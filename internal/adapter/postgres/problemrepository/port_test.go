package problemrepository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/static/errs"
)

var problemColumns = []string{
	"id", "title", "description", "difficulty", "input_example", "output_example",
	"test_cases", "hint_text", "full_solution", "is_active", "created_at",
}

func newRepo(t *testing.T, schema string) (*problemrepository.ProblemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return problemrepository.NewProblemRepository(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), schema), mock
}

func TestCountActiveProblems(t *testing.T) {
	repo, mock := newRepo(t, "")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM problem WHERE is_active = $1")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.CountActiveProblems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveProblemAt(t *testing.T) {
	repo, mock := newRepo(t, "leetle")
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM leetle.problem WHERE is_active = $1 ORDER BY id ASC LIMIT 1 OFFSET 2")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(problemColumns).AddRow(
			3, "FizzBuzz", "Print fizzbuzz", nil, "3", `["1","2","Fizz"]`,
			`[{"input":"3","output":"[\"1\",\"2\",\"Fizz\"]"}]`, "use modulo", nil, true, created,
		))

	p, err := repo.GetActiveProblemAt(context.Background(), 3)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.EqualValues(t, 3, p.ID)
	assert.Equal(t, domain.DifficultyMedium, p.Difficulty)
	assert.Equal(t, []domain.TestCase{{Input: "3", ExpectedOutput: `["1","2","Fizz"]`}}, p.TestCases)
	require.NotNil(t, p.HintText)
	assert.Equal(t, "use modulo", *p.HintText)
	assert.Nil(t, p.FullSolution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProblem_NotFound(t *testing.T) {
	repo, mock := newRepo(t, "")
	mock.ExpectQuery(regexp.QuoteMeta("FROM problem WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(problemColumns))

	p, err := repo.GetProblem(context.Background(), 9)

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetProblem_BadTestCases(t *testing.T) {
	repo, mock := newRepo(t, "")
	mock.ExpectQuery("FROM problem").
		WillReturnRows(sqlmock.NewRows(problemColumns).AddRow(
			1, "Broken", "", "Easy", "", "", "not json", nil, nil, true, time.Now(),
		))

	_, err := repo.GetProblem(context.Background(), 1)

	assert.ErrorIs(t, err, errs.MalformedTestCase)
}

func TestGetProblem_TestCaseWithoutOutput(t *testing.T) {
	repo, mock := newRepo(t, "")
	mock.ExpectQuery("FROM problem").
		WillReturnRows(sqlmock.NewRows(problemColumns).AddRow(
			1, "Half", "", "Easy", "", "", `[{"input":"5"}, null]`, nil, nil, true, time.Now(),
		))

	p, err := repo.GetProblem(context.Background(), 1)

	assert.ErrorIs(t, err, errs.MalformedTestCase)
	assert.Nil(t, p)
}

func TestCountActiveProblems_QueryError(t *testing.T) {
	repo, mock := newRepo(t, "")
	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT COUNT").WillReturnError(boom)

	_, err := repo.CountActiveProblems(context.Background())

	assert.ErrorIs(t, err, boom)
}
