package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/services/problem"
	"gitlab.com/leetle.net/internal/core/services/submission"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/handlers"
	"gitlab.com/leetle.net/internal/handlers/response"
	"gitlab.com/leetle.net/internal/static/errs"
)

// Handler serves the daily problem and grades submissions
type Handler struct {
	problemService    problem.IProblemService
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(
	problemService problem.IProblemService,
	submissionService submission.ISubmissionService,
	logger primary.Logger,
) *Handler {
	return &Handler{
		problemService:    problemService,
		submissionService: submissionService,
		logger:            logger,
	}
}

// RegisterRoutes mounts the routes; /submit goes through auth
func (h *Handler) RegisterRoutes(router *mux.Router, auth mux.MiddlewareFunc) {
	router.HandleFunc("/problem", h.GetProblem).Methods(http.MethodGet)
	router.HandleFunc("/api/languages", h.GetLanguages).Methods(http.MethodGet)
	router.Handle("/submit", auth(http.HandlerFunc(h.Submit))).Methods(http.MethodPost)
}

func (h *Handler) GetProblem(w http.ResponseWriter, r *http.Request) {
	view, err := h.problemService.GetDailyView(r.Context())
	if err != nil {
		if errors.Is(err, errs.NoProblemToday) {
			response.WriteError(w, response.ErrorMessage{Message: "No problem found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get daily problem", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Internal server error", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, view)
}

func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	langs := domain.Languages()
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.String())
	}
	response.WriteSuccess(w, LanguagesResponse{Languages: names})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "Missing or invalid authorization header", StatusCode: http.StatusUnauthorized})
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode submission", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Language and code are required", StatusCode: http.StatusBadRequest})
		return
	}

	result, err := h.submissionService.Submit(r.Context(), userID, req.Language, req.Code)
	if err != nil {
		response.WriteError(w, h.submitError(err))
		return
	}

	if !result.Correct {
		response.WriteError(w, response.ErrorMessage{Message: "Incorrect solution", StatusCode: http.StatusBadRequest})
		return
	}

	response.WriteSuccess(w, SubmitResponse{
		Message:       "Submission successful!",
		ExecutionTime: result.ExecutionTime,
		ProblemID:     result.ProblemID,
	})
}

func (h *Handler) submitError(err error) response.ErrorMessage {
	switch {
	case errors.Is(err, errs.CodeRequired):
		return response.ErrorMessage{Message: "Language and code are required", StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.UnsupportedLanguage):
		return response.ErrorMessage{Message: "Unsupported language", StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.NoProblemToday):
		return response.ErrorMessage{Message: "No problem available today", StatusCode: http.StatusNotFound}
	case errors.Is(err, errs.UnknownUser):
		return response.ErrorMessage{Message: "User not found", StatusCode: http.StatusUnauthorized}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Submission abandoned", "error", err)
		return response.ErrorMessage{Message: "Service busy, try again", StatusCode: http.StatusServiceUnavailable}
	default:
		h.logger.Error("Failed to grade submission", "error", err)
		return response.ErrorMessage{Message: "Internal server error", StatusCode: http.StatusInternalServerError}
	}
}
