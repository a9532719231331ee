package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/services/problem"
	"gitlab.com/leetle.net/internal/core/services/submission"
	"gitlab.com/leetle.net/internal/handlers"
	"gitlab.com/leetle.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	problemService    problem.IProblemService
	submissionService submission.ISubmissionService
	jwtService        primary.JWTService
	metricsHandler    http.Handler
}

// NewServiceProvider bundles the services the routes need. metricsHandler may be nil.
func NewServiceProvider(
	problemService problem.IProblemService,
	submissionService submission.ISubmissionService,
	jwtService primary.JWTService,
	metricsHandler http.Handler,
) *ServiceProvider {
	return &ServiceProvider{
		problemService:    problemService,
		submissionService: submissionService,
		jwtService:        jwtService,
		metricsHandler:    metricsHandler,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.jwtService == nil {
		return errors.New("jwt service is required")
	}
	mw := handlers.New(s.ServiceProvider.jwtService, s.logger)

	r := mux.NewRouter()
	r.Use(mw.RequestLogger)
	handlers.RegisterHealth(r)
	submissions.
		NewHandler(s.ServiceProvider.problemService, s.ServiceProvider.submissionService, s.logger).
		RegisterRoutes(r, mw.JWTMiddleware)
	if s.ServiceProvider.metricsHandler != nil {
		r.Handle("/metrics", s.ServiceProvider.metricsHandler).Methods(http.MethodGet)
	}
	s.router = r
	return nil
}

// Handler exposes the router for in-process use
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens in the background; the returned channel yields at most one
// error if the listener fails
func (s *Server) Start(ctx context.Context) <-chan error {
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: s.router,
		// submissions may run several test cases with long budgets
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
