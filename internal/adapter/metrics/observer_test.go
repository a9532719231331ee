package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/adapter/metrics"
	"gitlab.com/leetle.net/internal/domain"
)

func TestObserveRun(t *testing.T) {
	o := metrics.NewObserver()

	o.ObserveRun(domain.LanguagePython, domain.ExecutionResult{Classification: domain.ClassificationCompleted, Elapsed: 20 * time.Millisecond})
	o.ObserveRun(domain.LanguagePython, domain.ExecutionResult{Classification: domain.ClassificationTimedOut, Elapsed: 2 * time.Second})
	o.ObserveRun(domain.LanguagePython, domain.ExecutionResult{Classification: domain.ClassificationCompleted, Elapsed: 30 * time.Millisecond})

	n, err := testutil.GatherAndCount(o.Registry(), "leetle_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestObserveVerificationAndHandler(t *testing.T) {
	o := metrics.NewObserver()
	o.ObserveVerification(domain.LanguageJava, domain.VerificationOutcome{Correct: true, Executed: 3})
	o.ObserveVerification(domain.LanguageJava, domain.VerificationOutcome{Correct: false, Executed: 1})

	srv := httptest.NewServer(o.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `leetle_verifications_total{language="java",verdict="correct"} 1`)
	assert.Contains(t, string(body), `leetle_verifications_total{language="java",verdict="incorrect"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
