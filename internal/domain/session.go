package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseEntry is one exercise logged in a gym session.
type ExerciseEntry struct {
	Name      string  `bson:"name" json:"name"`
	Sets      int     `bson:"sets" json:"sets"`
	Reps      int     `bson:"reps" json:"reps"`
	MaxWeight float64 `bson:"maxWeight" json:"maxWeight"`
	VideoKey  string  `bson:"videoKey,omitempty" json:"videoKey,omitempty"`
	VideoURL  string  `bson:"-" json:"videoUrl,omitempty"`
}

// PitchEntry is the per-pitch-type line of a bullpen.
type PitchEntry struct {
	Count    int     `bson:"count" json:"count"`
	Accuracy float64 `bson:"accuracy" json:"accuracy"` // percent in zone
	MaxSpeed float64 `bson:"maxSpeed" json:"maxSpeed"` // mph
	VideoKey string  `bson:"videoKey,omitempty" json:"videoKey,omitempty"`
	VideoURL string  `bson:"-" json:"videoUrl,omitempty"`
}

// Session is a recorded workout or bullpen. Sessions are immutable once stored.
type Session struct {
	ID           primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	UserID       string                   `bson:"userId" json:"userId"`
	Discipline   Discipline               `bson:"discipline" json:"discipline"`
	Date         time.Time                `bson:"date" json:"date"`
	TimeSpent    float64                  `bson:"timeSpent" json:"timeSpent"` // minutes
	SessionType  string                   `bson:"sessionType,omitempty" json:"sessionType,omitempty"`
	Exercises    []ExerciseEntry          `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Pitches      map[PitchType]PitchEntry `bson:"pitches,omitempty" json:"pitches,omitempty"`
	TotalPitches int                      `bson:"totalPitches,omitempty" json:"totalPitches,omitempty"`
	CreatedAt    time.Time                `bson:"createdAt" json:"createdAt"`
}

// CountPitches sums the per-type counts.
func (s *Session) CountPitches() int {
	total := 0
	for _, p := range s.Pitches {
		total += p.Count
	}
	return total
}

// Validate checks that exactly the list matching Discipline is populated.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return invalidf("user id is required")
	}
	if s.Date.IsZero() {
		return invalidf("session date is required")
	}
	if s.TimeSpent < 0 {
		return invalidf("timeSpent cannot be negative")
	}
	switch s.Discipline {
	case DisciplineGym:
		if len(s.Pitches) > 0 {
			return invalidf("gym sessions cannot carry pitches")
		}
		for i, ex := range s.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return invalidf("exercise #%d has no name", i+1)
			}
			if ex.Sets < 0 || ex.Reps < 0 || ex.MaxWeight < 0 {
				return invalidf("exercise %q has negative values", ex.Name)
			}
		}
	case DisciplinePitching:
		if len(s.Exercises) > 0 {
			return invalidf("pitching sessions cannot carry exercises")
		}
		for pt, p := range s.Pitches {
			if code, ok := ParsePitchType(string(pt)); !ok || code != pt {
				return invalidf("unknown pitch type %q", pt)
			}
			if p.Count < 0 || p.MaxSpeed < 0 {
				return invalidf("pitch %s has negative values", pt)
			}
			if p.Accuracy < 0 || p.Accuracy > 100 {
				return invalidf("pitch %s accuracy must be within 0-100", pt)
			}
		}
	case "":
		return invalidf("discipline is required")
	default:
		return invalidf("unknown discipline %q", s.Discipline)
	}
	return nil
}

// VideoKeys returns every blob key referenced by the session.
func (s *Session) VideoKeys() []string {
	var keys []string
	for _, ex := range s.Exercises {
		if ex.VideoKey != "" {
			keys = append(keys, ex.VideoKey)
		}
	}
	for _, pt := range PitchTypes {
		if p, ok := s.Pitches[pt]; ok && p.VideoKey != "" {
			keys = append(keys, p.VideoKey)
		}
	}
	return keys
}
