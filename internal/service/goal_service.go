package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/progress"
	"guardians/training-tracker/internal/rag"
	"guardians/training-tracker/internal/repository"
)

//go:generate mockgen -source=goal_service.go -destination=mocks/goal_service_mocks.go -package=mocks

// GoalInput is a goal form as submitted. Discipline and Scope are raw
// strings so aliases can be resolved here.
type GoalInput struct {
	Discipline    string
	Scope         string
	TargetDate    *time.Time
	Totals        domain.GoalTotals
	ExerciseGoals []domain.ExerciseGoal
	PitchGoals    []domain.PitchGoal
}

type GoalService interface {
	// SaveGoal creates or overwrites the goal stored under the submission's
	// key and returns the stored record. created is true for a new record.
	SaveGoal(ctx context.Context, userID string, in GoalInput) (goal *domain.Goal, created bool, err error)
	// ListGoals returns goals newest first. An empty discipline lists all.
	ListGoals(ctx context.Context, userID, discipline string) ([]domain.Goal, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
	userRepo repository.UserRepository
	indexer  Indexer
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewGoalService(
	goalRepo repository.GoalRepository,
	userRepo repository.UserRepository,
	indexer Indexer,
	m *metrics.Manager,
) GoalService {
	return &goalService{
		goalRepo: goalRepo,
		userRepo: userRepo,
		indexer:  indexer,
		metrics:  m,
		now:      time.Now,
	}
}

// normalizeGoalInput turns a raw form into a submission. Item goals without
// a name are dropped; pitch goals get their code inferred from the name when
// none was given.
func normalizeGoalInput(userID string, in GoalInput) (domain.GoalSubmission, error) {
	discipline, err := domain.ParseDiscipline(in.Discipline)
	if err != nil {
		return domain.GoalSubmission{}, err
	}
	scope, err := domain.ParseScope(in.Scope)
	if err != nil {
		return domain.GoalSubmission{}, err
	}

	sub := domain.GoalSubmission{
		UserID:     userID,
		Discipline: discipline,
		Scope:      scope,
		Totals:     in.Totals,
	}
	if scope == domain.ScopeDated {
		sub.TargetDate = in.TargetDate
	}

	for _, eg := range in.ExerciseGoals {
		eg.Name = strings.TrimSpace(eg.Name)
		if eg.Name == "" {
			continue
		}
		sub.ExerciseGoals = append(sub.ExerciseGoals, eg)
	}
	for _, pg := range in.PitchGoals {
		pg.Name = strings.TrimSpace(pg.Name)
		if pg.PitchType != "" {
			code, ok := domain.ParsePitchType(string(pg.PitchType))
			if !ok {
				return domain.GoalSubmission{}, fmt.Errorf("%w: unknown pitch type %q", ErrValidation, pg.PitchType)
			}
			pg.PitchType = code
		} else if code, ok := domain.ParsePitchType(string(progress.PitchTypeForGoal(pg))); ok {
			pg.PitchType = code
		}
		if pg.Name == "" && pg.PitchType == "" {
			continue
		}
		if pg.Name == "" {
			pg.Name = pg.PitchType.Label()
		}
		sub.PitchGoals = append(sub.PitchGoals, pg)
	}

	if err := sub.Validate(); err != nil {
		return domain.GoalSubmission{}, err
	}
	return sub, nil
}

func (s *goalService) SaveGoal(ctx context.Context, userID string, in GoalInput) (*domain.Goal, bool, error) {
	sub, err := normalizeGoalInput(userID, in)
	if err != nil {
		return nil, false, err
	}
	logger := log.WithFields(log.Fields{"userId": userID, "discipline": sub.Discipline, "scope": sub.Scope})

	existing, err := s.goalRepo.FindByUser(ctx, userID, sub.Discipline)
	if err != nil {
		return nil, false, fmt.Errorf("load goals: %w", err)
	}

	goal, created := progress.ApplyUpsert(existing, sub, s.now(), primitive.NewObjectID())
	if err := s.goalRepo.Upsert(ctx, &goal); err != nil {
		return nil, false, fmt.Errorf("upsert goal: %w", err)
	}

	key := progress.KeyFor(sub)
	stored, err := s.goalRepo.FindByKey(ctx, userID, key.Discipline, key.Scope, key.DateKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Error("Goal missing right after upsert")
			return nil, false, ErrNotFoundAfterWrite
		}
		return nil, false, fmt.Errorf("read back goal: %w", err)
	}

	s.touchPlayer(ctx, userID)

	outcome := "updated"
	if created {
		outcome = "created"
	}
	if s.metrics != nil {
		s.metrics.CounterGoalsUpserted.WithLabelValues(string(stored.Discipline), outcome).Inc()
	}
	logger.WithField("goalId", stored.ID.Hex()).Infof("Goal %s", outcome)

	indexErr := s.indexer.IndexGoal(context.WithoutCancel(ctx), stored)
	rag.LogIndexError(indexErr, log.Fields{"userId": userID, "goalId": stored.ID.Hex()}, "Goal indexing failed")

	return stored, created, nil
}

// touchPlayer keeps the player record current. Failures are logged only.
func (s *goalService) touchPlayer(ctx context.Context, userID string) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		log.WithField("userId", userID).Debug("Skipping player upsert for non-ObjectID user id")
		return
	}
	if err := s.userRepo.TouchPlayer(ctx, id); err != nil {
		log.WithError(err).WithField("userId", userID).Warn("Player upsert failed")
	}
}

func (s *goalService) ListGoals(ctx context.Context, userID, discipline string) ([]domain.Goal, error) {
	var d domain.Discipline
	if strings.TrimSpace(discipline) != "" {
		parsed, err := domain.ParseDiscipline(discipline)
		if err != nil {
			return nil, err
		}
		d = parsed
	}
	return s.goalRepo.FindByUser(ctx, userID, d)
}
