package providers

import (
	"context"
	"errors"
	"time"
)

// retryBaseDelay is the first back-off step; each retry doubles it.
var retryBaseDelay = time.Second

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string { return "server error: " + e.body }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsRateLimited checks if an error is a provider rate-limit rejection.
func IsRateLimited(err error) bool {
	var rl *rateLimitError
	return errors.As(err, &rl)
}

func isRetryable(err error) bool {
	var rl *rateLimitError
	var se *serverError
	return errors.As(err, &rl) || errors.As(err, &se)
}

func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := retryBaseDelay << uint(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}

// classifyStatus maps an HTTP status to the provider error taxonomy.
// It returns nil for 2xx.
func classifyStatus(status int, body string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 429:
		return &rateLimitError{}
	case status == 401 || status == 403:
		return &authError{message: body}
	case status >= 500:
		return &serverError{statusCode: status, body: body}
	default:
		return &apiError{statusCode: status, body: body}
	}
}

type apiError struct {
	statusCode int
	body       string
}

func (e *apiError) Error() string { return "API error: " + e.body }
