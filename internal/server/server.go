package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/dshills/guardian/internal/config"
	"github.com/dshills/guardian/internal/intake"
	"github.com/dshills/guardian/internal/review"
)

// Reviewer runs one review. *review.Engine satisfies it.
type Reviewer interface {
	Review(ctx context.Context, req review.Request) (*review.Result, error)
	Provider() string
}

// Server is the HTTP front end.
type Server struct {
	engine   Reviewer
	cfg      config.Config
	rules    intake.Rules
	log      *logrus.Logger
	limiter  *rate.Limiter
	validate *validator.Validate
	handler  http.Handler
}

// New wires routes and middleware around engine.
func New(engine Reviewer, cfg config.Config, log *logrus.Logger) *Server {
	rps := cfg.Server.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Server.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	s := &Server{
		engine:   engine,
		cfg:      cfg,
		rules:    intake.DefaultRules(),
		log:      log,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/intake", s.handleIntake)
	mux.Handle("POST /api/review", s.withRateLimit(http.HandlerFunc(s.handleReview)))
	mux.Handle("POST /api/review/upload", s.withRateLimit(http.HandlerFunc(s.handleUpload)))

	s.handler = s.withRecover(s.withLogging(mux))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.reviewTimeout() + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) reviewTimeout() time.Duration {
	if s.cfg.Server.TimeoutSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(s.cfg.Server.TimeoutSeconds) * time.Second
}
