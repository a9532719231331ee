package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/leetle.net/internal/handlers/response"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID stores the authenticated user on the request context
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the user set by JWTMiddleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RegisterHealth mounts the liveness probe
func RegisterHealth(router *mux.Router) {
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteSuccess(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
}
