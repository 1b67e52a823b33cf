package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/progress"
	"guardians/training-tracker/internal/repository"
)

//go:generate mockgen -source=progress_service.go -destination=mocks/progress_service_mocks.go -package=mocks

// ProgressResult is the ring payload plus the goal it was measured against.
type ProgressResult struct {
	progress.Progress
	Selection string  `json:"selection"`
	GoalID    *string `json:"goalId"`
}

// ItemRingsResult is the per-item ring payload.
type ItemRingsResult struct {
	progress.ItemRings
	Selection string  `json:"selection"`
	GoalID    *string `json:"goalId"`
}

type ProgressService interface {
	Progress(ctx context.Context, userID, discipline, selection string) (*ProgressResult, error)
	ItemRings(ctx context.Context, userID, discipline, selection string) (*ItemRingsResult, error)
	History(ctx context.Context, userID, discipline, item, rng string) (*progress.History, error)
}

type progressService struct {
	goalRepo    repository.GoalRepository
	sessionRepo repository.SessionRepository
	now         func() time.Time
}

func NewProgressService(goalRepo repository.GoalRepository, sessionRepo repository.SessionRepository) ProgressService {
	return &progressService{
		goalRepo:    goalRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// load fetches the discipline's goals and sessions concurrently.
func (s *progressService) load(ctx context.Context, userID string, discipline domain.Discipline) ([]domain.Goal, []domain.Session, error) {
	var (
		goals    []domain.Goal
		sessions []domain.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.FindByUser(gctx, userID, discipline)
		if err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessionRepo.FindByUser(gctx, userID, discipline)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return goals, sessions, nil
}

// resolve loads everything and picks the goal for sel. A nil goal is not an
// error: callers render actuals against zero targets.
func (s *progressService) resolve(ctx context.Context, userID, discipline, selection string) (domain.Discipline, progress.Selection, *domain.Goal, []domain.Session, error) {
	d, err := domain.ParseDiscipline(discipline)
	if err != nil {
		return "", progress.Lifetime, nil, nil, err
	}
	sel := progress.ParseSelection(selection)

	goals, sessions, err := s.load(ctx, userID, d)
	if err != nil {
		return "", sel, nil, nil, err
	}
	return d, sel, progress.Resolve(goals, d, sel), sessions, nil
}

func goalIDOf(g *domain.Goal) *string {
	if g == nil {
		return nil
	}
	id := g.ID.Hex()
	return &id
}

func (s *progressService) Progress(ctx context.Context, userID, discipline, selection string) (*ProgressResult, error) {
	d, sel, goal, sessions, err := s.resolve(ctx, userID, discipline, selection)
	if err != nil {
		return nil, err
	}
	return &ProgressResult{
		Progress:  progress.ComputeProgress(goal, sessions, d),
		Selection: sel.String(),
		GoalID:    goalIDOf(goal),
	}, nil
}

func (s *progressService) ItemRings(ctx context.Context, userID, discipline, selection string) (*ItemRingsResult, error) {
	d, sel, goal, sessions, err := s.resolve(ctx, userID, discipline, selection)
	if err != nil {
		return nil, err
	}
	return &ItemRingsResult{
		ItemRings: progress.ComputeItemRings(goal, sessions, d),
		Selection: sel.String(),
		GoalID:    goalIDOf(goal),
	}, nil
}

func (s *progressService) History(ctx context.Context, userID, discipline, item, rng string) (*progress.History, error) {
	d, err := domain.ParseDiscipline(discipline)
	if err != nil {
		return nil, err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, fmt.Errorf("%w: item is required", ErrValidation)
	}
	if d == domain.DisciplinePitching {
		if _, ok := domain.ParsePitchType(string(progress.PitchTypeForItem(item))); !ok {
			return nil, fmt.Errorf("%w: unknown pitch type %q", ErrValidation, item)
		}
	}
	r, err := progress.ParseRange(rng)
	if err != nil {
		return nil, err
	}

	goals, sessions, err := s.load(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	h := progress.BuildHistory(item, sessions, d, goals, r, s.now())
	return &h, nil
}
