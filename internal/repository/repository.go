package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"guardians/training-tracker/internal/domain"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mocks.go -package=mocks

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with player accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// TouchPlayer upserts the player record, creating it with role=player on first sight.
	TouchPlayer(ctx context.Context, id primitive.ObjectID) error
}

// GoalRepository stores at most one goal per (user, discipline, scope, targetDateKey).
type GoalRepository interface {
	// FindByUser returns goals newest first. An empty discipline returns all of them.
	FindByUser(ctx context.Context, userID string, discipline domain.Discipline) ([]domain.Goal, error)
	// Upsert writes goal under its key: totals, item goals and updatedAt are
	// overwritten, _id and createdAt are only set on insert.
	Upsert(ctx context.Context, goal *domain.Goal) error
	// FindByKey reads back the goal stored under a key. dateKey is nil for lifetime goals.
	FindByKey(ctx context.Context, userID string, discipline domain.Discipline, scope domain.Scope, dateKey *string) (*domain.Goal, error)
}

// SessionRepository stores immutable training sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	// FindByUser returns sessions oldest first. An empty discipline returns all of them.
	FindByUser(ctx context.Context, userID string, discipline domain.Discipline) ([]domain.Session, error)
}

// ProfileRepository stores one onboarding profile per user.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.TrainingProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.TrainingProfile, error)
}

// CoachDocRepository stores metadata for uploaded coaching documents.
type CoachDocRepository interface {
	Create(ctx context.Context, doc *domain.CoachDoc) (primitive.ObjectID, error)
	SetChunkCount(ctx context.Context, id primitive.ObjectID, chunks int) error
	FindByUser(ctx context.Context, userID string) ([]domain.CoachDoc, error)
}

// VectorRepository is a per-namespace similarity index.
type VectorRepository interface {
	Upsert(ctx context.Context, namespace string, items []domain.VectorItem) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.VectorMatch, error)
	// DeleteByPrefix removes items whose id starts with prefix, except the ids in keep.
	DeleteByPrefix(ctx context.Context, namespace, prefix string, keep []string) (int64, error)
}
