package handlers

import (
	"net/http"
	"strings"
	"time"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/handlers/response"
)

type MiddlewareProvider struct {
	jwtService primary.JWTService
	logger     primary.Logger
}

func New(jwtService primary.JWTService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
		logger:     logger,
	}
}

// JWTMiddleware admits requests carrying a valid access token and puts its
// user on the request context
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			response.WriteError(w, response.ErrorMessage{
				Message:    "Missing or invalid authorization header",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		payload, err := m.jwtService.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil || payload.Type != domain.TokenTypeAccess {
			m.logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
			response.WriteError(w, response.ErrorMessage{
				Message:    "Invalid or expired token",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), payload.UserID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request
func (m *MiddlewareProvider) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
