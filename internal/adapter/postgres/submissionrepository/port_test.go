package submissionrepository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/leetle.net/internal/domain"
)

func newRepo(t *testing.T) (*submissionrepository.SubmissionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return submissionrepository.NewSubmissionRepository(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), ""), mock
}

func TestSaveSubmission(t *testing.T) {
	repo, mock := newRepo(t)
	sub := domain.NewSubmission(7, 3, domain.LanguagePython, "print(1)", domain.VerificationOutcome{
		Correct:      true,
		TotalElapsed: 250 * time.Millisecond,
	})

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO submission (id,user_id,problem_id,language,code,exec_time,is_correct,submitted_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)")).
		WithArgs(sub.ID, int64(7), int64(3), domain.LanguagePython, "print(1)", 0.25, true, sub.SubmittedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveSubmission(context.Background(), sub))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSubmission_Error(t *testing.T) {
	repo, mock := newRepo(t)
	boom := errors.New("fk violation")
	mock.ExpectExec("INSERT INTO submission").WillReturnError(boom)

	err := repo.SaveSubmission(context.Background(), domain.NewSubmission(1, 1, domain.LanguageJava, "x", domain.VerificationOutcome{}))

	assert.ErrorIs(t, err, boom)
}

func TestGetSubmission_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM submission WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s, err := repo.GetSubmission(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestCountByLanguage(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT language, COUNT(*) AS n FROM submission WHERE user_id = $1 GROUP BY language")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"language", "n"}).
			AddRow("python", 4).
			AddRow("java", 1))

	counts, err := repo.CountByLanguage(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, map[domain.Language]int{domain.LanguagePython: 4, domain.LanguageJava: 1}, counts)
}

func TestCountDistinctProblems(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT problem_id) FROM submission WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountDistinctProblems(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCorrectSubmissionTimes(t *testing.T) {
	repo, mock := newRepo(t)
	t1 := time.Date(2025, 4, 9, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 4, 10, 11, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT submitted_at FROM submission WHERE is_correct = $1 AND user_id = $2 ORDER BY submitted_at ASC")).
		WithArgs(true, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"submitted_at"}).AddRow(t1).AddRow(t2))

	times, err := repo.CorrectSubmissionTimes(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{t1, t2}, times)
}
