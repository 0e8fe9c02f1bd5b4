// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/review"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Validation failures are the caller's fault (400); provider throttling is
// surfaced as 429; configuration, provider and response-contract failures
// are all server-side (500).
func HTTPStatus(err error) int {
	var (
		validationErr *review.ValidationError
		quotaErr      *llm.QuotaError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &quotaErr):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the user-visible message for an error. Quota errors
// get an actionable message instead of the raw provider text.
func errorMessage(err error) string {
	var quotaErr *llm.QuotaError
	if errors.As(err, &quotaErr) {
		return "API quota exceeded. Please try again in a few moments or upgrade your plan."
	}
	return err.Error()
}
