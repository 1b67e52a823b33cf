package progress

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"guardians/training-tracker/internal/domain"
)

const dateKeyLayout = "2006-01-02"

// TargetDateKey buckets t to its UTC calendar day, so submissions for the
// same instant from different offsets collapse to one key.
func TargetDateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// GoalKey identifies the single goal a submission overwrites.
// DateKey is nil for lifetime goals.
type GoalKey struct {
	UserID     string
	Discipline domain.Discipline
	Scope      domain.Scope
	DateKey    *string
}

// KeyFor derives the match key of a submission.
func KeyFor(sub domain.GoalSubmission) GoalKey {
	k := GoalKey{UserID: sub.UserID, Discipline: sub.Discipline, Scope: sub.Scope}
	if sub.Scope == domain.ScopeDated && sub.TargetDate != nil {
		key := TargetDateKey(*sub.TargetDate)
		k.DateKey = &key
	}
	return k
}

// Matches reports whether g is stored under k.
func (k GoalKey) Matches(g domain.Goal) bool {
	if g.UserID != k.UserID || g.Discipline != k.Discipline || g.Scope != k.Scope {
		return false
	}
	if k.DateKey == nil {
		return g.TargetDateKey == nil
	}
	return g.TargetDateKey != nil && *g.TargetDateKey == *k.DateKey
}

// ApplyUpsert merges sub into the goal stored under its key. A match keeps
// its id and CreatedAt; otherwise a new goal is built with newID. The
// returned flag is true when the goal is new.
func ApplyUpsert(existing []domain.Goal, sub domain.GoalSubmission, now time.Time, newID primitive.ObjectID) (domain.Goal, bool) {
	key := KeyFor(sub)
	now = now.UTC()

	var current *domain.Goal
	for i := range existing {
		g := &existing[i]
		if !key.Matches(*g) {
			continue
		}
		if current == nil || g.CreatedAt.After(current.CreatedAt) {
			current = g
		}
	}

	goal := domain.Goal{
		ID:            newID,
		UserID:        sub.UserID,
		Discipline:    sub.Discipline,
		Scope:         sub.Scope,
		TargetDateKey: key.DateKey,
		Totals:        sub.Totals,
		ExerciseGoals: sub.ExerciseGoals,
		PitchGoals:    sub.PitchGoals,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if sub.Scope == domain.ScopeDated && sub.TargetDate != nil {
		td := sub.TargetDate.UTC()
		goal.TargetDate = &td
	}
	if current == nil {
		return goal, true
	}
	goal.ID = current.ID
	goal.CreatedAt = current.CreatedAt
	return goal, false
}
