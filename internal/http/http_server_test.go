package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/adapter/crypto"
	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/adapter/metrics"
	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/domain"
)

type noProblems struct{}

func (noProblems) Today(context.Context) (*domain.Problem, error) { return nil, nil }

func (noProblems) GetDailyView(context.Context) (*domain.ProblemView, error) {
	return &domain.ProblemView{Title: "Two Sum"}, nil
}

func TestInitMountsRoutes(t *testing.T) {
	jwtService := crypto.NewJWTService(&config.JwtConfig{Secret: "s"})
	provider := NewServiceProvider(noProblems{}, nil, jwtService, metrics.NewObserver().Handler())
	s := NewServer(0, "leetle", *provider, logging.NewNopLogger())
	require.NoError(t, s.Init())

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/problem", http.StatusOK},
		{http.MethodGet, "/api/languages", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/submit", http.StatusUnauthorized},
		{http.MethodGet, "/submit", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestInitRequiresJWT(t *testing.T) {
	s := NewServer(0, "leetle", *NewServiceProvider(noProblems{}, nil, nil, nil), logging.NewNopLogger())

	assert.Error(t, s.Init())
}

func TestStopBeforeStart(t *testing.T) {
	s := NewServer(0, "leetle", ServiceProvider{}, logging.NewNopLogger())

	assert.NoError(t, s.Stop(context.Background()))
}
