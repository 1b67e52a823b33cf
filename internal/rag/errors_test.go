package rag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("embed", nil))

	limited := classify("embed", fmt.Errorf("call: %w", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}))
	assert.ErrorIs(t, limited, ErrRateLimited)

	exhausted := classify("embed", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"})
	assert.ErrorIs(t, exhausted, ErrRateLimited)

	down := classify("chat", genai.APIError{Code: 503, Status: "UNAVAILABLE"})
	assert.ErrorIs(t, down, ErrUnavailable)
	assert.False(t, errors.Is(down, ErrRateLimited))

	plain := classify("chat", errors.New("dial tcp: refused"))
	assert.ErrorIs(t, plain, ErrUnavailable)
}
