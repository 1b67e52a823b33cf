package service

import (
	"context"
	"errors"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/rag"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks

// --- Error Definitions ---
var (
	// ErrValidation is re-exported so handlers only need this package.
	ErrValidation         = domain.ErrValidation
	ErrNotFoundAfterWrite = errors.New("record not found after write")
	ErrPayloadTooLarge    = errors.New("payload too large")
)

// Indexer pushes records into the assistant's vector index.
// *rag.Indexer is the production implementation.
type Indexer interface {
	IndexSession(ctx context.Context, s *domain.Session) error
	IndexGoal(ctx context.Context, g *domain.Goal) error
	IndexCoachDoc(ctx context.Context, doc *domain.CoachDoc, text string) (int, error)
}

// AssistantService answers a player's training questions.
// *rag.Assistant implements it.
type AssistantService interface {
	Ask(ctx context.Context, userID, question string) (rag.Answer, error)
}

var (
	_ Indexer          = (*rag.Indexer)(nil)
	_ AssistantService = (*rag.Assistant)(nil)
)
