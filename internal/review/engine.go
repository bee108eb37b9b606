package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/guardian/internal/cache"
	"github.com/dshills/guardian/internal/config"
	"github.com/dshills/guardian/internal/logging"
	"github.com/dshills/guardian/internal/providers"
	"github.com/dshills/guardian/internal/redact"
	"github.com/dshills/guardian/internal/render"
)

// Engine runs reviews against one provider. It is safe for concurrent use
// when its cache Store is.
type Engine struct {
	provider providers.Reviewer
	cfg      config.Config
	store    cache.Store
	log      *logrus.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache enables response caching.
func WithCache(store cache.Store) Option {
	return func(e *Engine) { e.store = store }
}

// WithLogger sets the engine logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an Engine for provider using the model and sampling
// settings in cfg.
func NewEngine(provider providers.Reviewer, cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		cfg:      cfg,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Review sends req to the provider and returns the parsed feedback.
func (e *Engine) Review(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if strings.TrimSpace(req.Code) == "" {
		return nil, ErrEmptyCode
	}

	payload := req.Code
	if e.cfg.Privacy.RedactSecrets {
		payload = redact.Secrets(payload)
	}

	result := &Result{
		ID:       uuid.NewString(),
		Mode:     req.Mode,
		Provider: e.provider.Name(),
		Model:    e.cfg.Model,
		Files:    req.Files,
	}
	log := e.log.WithFields(logrus.Fields{
		"review_id": result.ID,
		"provider":  result.Provider,
		"model":     result.Model,
		"files":     len(req.Files),
	})

	key := cache.BuildCacheKey(result.Provider, result.Model, payload, req.Context)
	if e.store != nil {
		if feedback, ok := e.store.Get(key); ok {
			log.Debug("cache hit")
			result.Cached = true
			return e.finish(result, feedback, start), nil
		}
	}

	llmStart := time.Now()
	resp, err := e.provider.Review(ctx, providers.ReviewRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(payload, req.Context),
		MaxTokens:    e.cfg.MaxTokens,
		Temperature:  e.cfg.Temperature,
		TopP:         e.cfg.TopP,
	})
	if err != nil {
		log.WithError(err).Warn("review failed")
		return nil, fmt.Errorf("failed to get review from %s: %w", result.Provider, err)
	}
	result.Timing.LLMMs = time.Since(llmStart).Milliseconds()
	result.TokensUsed = resp.TokensUsed

	feedback := resp.Content
	if e.store != nil {
		if err := e.store.Put(key, feedback); err != nil {
			log.WithError(err).Warn("cache write failed")
		}
	}

	e.finish(result, feedback, start)
	log.WithFields(logrus.Fields{
		"tokens":   result.TokensUsed,
		"llm_ms":   result.Timing.LLMMs,
		"blocks":   len(result.Blocks),
		"total_ms": result.Timing.TotalMs,
	}).Info("review complete")
	return result, nil
}

func (e *Engine) finish(r *Result, feedback string, start time.Time) *Result {
	r.Feedback = feedback
	r.Blocks = render.Render(feedback)
	r.Timing.TotalMs = time.Since(start).Milliseconds()
	return r
}

// Provider returns the name of the provider reviews are sent to.
func (e *Engine) Provider() string { return e.provider.Name() }
