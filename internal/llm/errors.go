package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ProviderError indicates the provider request itself failed (network error,
// server-side failure, blocked response). It is never retried in-process.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider request failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// QuotaError indicates the provider rejected the request due to throttling.
// Callers map it to 429 rather than the generic provider failure status.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("provider quota exceeded: %v", e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

// classifyProviderError wraps a raw provider error into the taxonomy above.
// The structured googleapi status code is checked first; the substring match
// is a fallback for errors that reach us already stringified or wrapped by
// the SDK without the typed error.
func classifyProviderError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return &QuotaError{Err: err}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate limit") {
		return &QuotaError{Err: err}
	}

	return &ProviderError{Err: err}
}
