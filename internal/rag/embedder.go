package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

//go:generate mockgen -source=embedder.go -destination=mocks/embedder_mocks.go -package=mocks

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Embedding task types. Stored items and questions are embedded with the
// matching retrieval task so their vectors are comparable.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// GenAIEmbedder generates embeddings using Google's Gemini API.
type GenAIEmbedder struct {
	client   *genai.Client
	model    string
	taskType string
}

func NewGenAIEmbedder(client *genai.Client, model, taskType string) *GenAIEmbedder {
	return &GenAIEmbedder{
		client:   client,
		model:    model,
		taskType: taskType,
	}
}

// Embed generates an embedding for a single text.
func (e *GenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType: e.taskType,
	})
	if err != nil {
		return nil, classify("embed", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed: %w: no embeddings returned", ErrUnavailable)
	}
	return result.Embeddings[0].Values, nil
}

// RetryingEmbedder retries rate-limited calls with exponential backoff.
// Any other failure is returned on the first attempt.
type RetryingEmbedder struct {
	next           Embedder
	maxRetries     uint64
	initialBackoff time.Duration
	onRetry        func()
}

// NewRetryingEmbedder wraps next. onRetry may be nil.
func NewRetryingEmbedder(next Embedder, maxRetries uint64, initialBackoff time.Duration, onRetry func()) *RetryingEmbedder {
	if initialBackoff <= 0 {
		initialBackoff = 300 * time.Millisecond
	}
	return &RetryingEmbedder{
		next:           next,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
		onRetry:        onRetry,
	}
}

func (r *RetryingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	op := func() error {
		v, err := r.next.Embed(ctx, text)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				return err
			}
			return backoff.Permanent(err)
		}
		vector = v
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = r.initialBackoff
	expBackoff.Multiplier = 2
	expBackoff.RandomizationFactor = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, r.maxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		log.WithError(err).WithField("wait", wait).Warn("Embedding rate limited, retrying")
		if r.onRetry != nil {
			r.onRetry()
		}
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return vector, nil
}
