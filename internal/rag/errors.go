package rag

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var (
	// ErrRateLimited is returned when the provider throttled the call. It is retryable.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable covers every other collaborator failure.
	ErrUnavailable = errors.New("collaborator unavailable")
	// ErrDisabled is returned by the no-op implementations used when no API key is configured.
	ErrDisabled = errors.New("assistant is not configured")
)

// classify maps a provider error onto ErrRateLimited or ErrUnavailable,
// keeping the original error in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isRateLimit(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrRateLimited, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

func isRateLimit(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Status == "RESOURCE_EXHAUSTED"
	}
	return false
}
