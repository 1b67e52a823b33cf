package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalTotals holds the discipline-level targets.
// Gym goals use Sets, pitching goals use Accuracy.
type GoalTotals struct {
	Minutes  float64 `bson:"minutes" json:"minutes"`
	Reps     float64 `bson:"reps" json:"reps"`
	Sets     float64 `bson:"sets,omitempty" json:"sets,omitempty"`
	Accuracy float64 `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
}

// ExerciseGoal is a per-exercise gym target.
type ExerciseGoal struct {
	Name    string  `bson:"name" json:"name"`
	Minutes float64 `bson:"minutes" json:"minutes"`
	Reps    float64 `bson:"reps" json:"reps"`
	Max     float64 `bson:"max" json:"max"`
}

// PitchGoal is a per-pitch-type target. PitchType may be empty on legacy
// records, in which case it is inferred from Name.
type PitchGoal struct {
	Name         string    `bson:"name" json:"name"`
	PitchType    PitchType `bson:"pitchType,omitempty" json:"pitchType,omitempty"`
	Minutes      float64   `bson:"minutes" json:"minutes"`
	Reps         float64   `bson:"reps" json:"reps"`
	FastestSpeed float64   `bson:"fastestSpeed" json:"fastestSpeed"`
	Accuracy     float64   `bson:"accuracy" json:"accuracy"`
}

// Goal is a stored goal document. Discipline decides which of ExerciseGoals
// and PitchGoals is populated; the other stays nil.
type Goal struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	Discipline    Discipline         `bson:"discipline" json:"discipline"`
	Scope         Scope              `bson:"scope" json:"scope"`
	TargetDateKey *string            `bson:"targetDateKey" json:"targetDateKey"` // stored as null for lifetime goals
	TargetDate    *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Totals        GoalTotals         `bson:"totals" json:"totals"`
	ExerciseGoals []ExerciseGoal     `bson:"exerciseGoals,omitempty" json:"exerciseGoals,omitempty"`
	PitchGoals    []PitchGoal        `bson:"pitchGoals,omitempty" json:"pitchGoals,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsLifetime reports whether the goal is open-ended.
func (g *Goal) IsLifetime() bool {
	return g.Scope == ScopeLifetime
}

// IsDated reports whether the goal is tied to a target date that is present.
func (g *Goal) IsDated() bool {
	return g.Scope == ScopeDated && g.TargetDate != nil
}

// GoalSubmission is a validated goal form ready for the upsert policy.
type GoalSubmission struct {
	UserID        string
	Discipline    Discipline
	Scope         Scope
	TargetDate    *time.Time
	Totals        GoalTotals
	ExerciseGoals []ExerciseGoal
	PitchGoals    []PitchGoal
}

// Validate enforces the required fields and the discipline/item-list pairing.
func (s *GoalSubmission) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return invalidf("user id is required")
	}
	switch s.Discipline {
	case DisciplineGym:
		if len(s.PitchGoals) > 0 {
			return invalidf("gym goals cannot carry pitch goals")
		}
		if s.Totals.Accuracy != 0 {
			return invalidf("gym goals do not track accuracy")
		}
	case DisciplinePitching:
		if len(s.ExerciseGoals) > 0 {
			return invalidf("pitching goals cannot carry exercise goals")
		}
		if s.Totals.Sets != 0 {
			return invalidf("pitching goals do not track sets")
		}
		for _, pg := range s.PitchGoals {
			if pg.PitchType != "" {
				if _, ok := ParsePitchType(string(pg.PitchType)); !ok {
					return invalidf("unknown pitch type %q", pg.PitchType)
				}
			}
		}
	case "":
		return invalidf("discipline is required")
	default:
		return invalidf("unknown discipline %q", s.Discipline)
	}
	switch s.Scope {
	case ScopeLifetime:
	case ScopeDated:
		if s.TargetDate == nil || s.TargetDate.IsZero() {
			return invalidf("targetDate is required for dated goals")
		}
	default:
		return invalidf("unknown goal scope %q", s.Scope)
	}
	for _, v := range []float64{s.Totals.Minutes, s.Totals.Reps, s.Totals.Sets, s.Totals.Accuracy} {
		if v < 0 {
			return invalidf("goal totals cannot be negative")
		}
	}
	return nil
}
