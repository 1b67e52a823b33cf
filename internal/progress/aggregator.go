package progress

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"guardians/training-tracker/internal/domain"
)

// Totals carries either actuals or targets for one discipline. Gym uses Sets,
// pitching uses Accuracy; Reps is rep-volume for gym and throws for pitching.
type Totals struct {
	Minutes  float64 `json:"minutes"`
	Reps     float64 `json:"reps"`
	Sets     float64 `json:"sets,omitempty"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

// Progress is the ring data for one discipline.
type Progress struct {
	Discipline            domain.Discipline `json:"discipline"`
	MinutesPercent        float64           `json:"minutesPercent"`
	RepsPercent           float64           `json:"repsPercent"`
	SetsOrAccuracyPercent float64           `json:"setsOrAccuracyPercent"`
	Actual                Totals            `json:"actual"`
	Target                Totals            `json:"target"`
}

// Percent expresses actual as a share of target, clamped to [0,100].
// A non-positive target always yields 0.
func Percent(actual, target float64) float64 {
	if target <= 0 || math.IsNaN(actual) || math.IsNaN(target) {
		return 0
	}
	p := actual / target * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// ComputeProgress measures the whole session history of discipline against
// goal. No date window is applied, even for dated goals. A nil goal yields
// actuals with all percentages at 0.
func ComputeProgress(goal *domain.Goal, sessions []domain.Session, discipline domain.Discipline) Progress {
	p := Progress{Discipline: discipline}
	switch discipline {
	case domain.DisciplineGym:
		p.Actual = gymActuals(sessions)
	case domain.DisciplinePitching:
		p.Actual = pitchingActuals(sessions)
	}
	if goal == nil || goal.Discipline != discipline {
		return p
	}

	p.Target = Totals{Minutes: goal.Totals.Minutes, Reps: goal.Totals.Reps}
	p.MinutesPercent = Percent(p.Actual.Minutes, p.Target.Minutes)
	p.RepsPercent = Percent(p.Actual.Reps, p.Target.Reps)
	if discipline == domain.DisciplineGym {
		p.Target.Sets = goal.Totals.Sets
		p.SetsOrAccuracyPercent = Percent(p.Actual.Sets, p.Target.Sets)
	} else {
		p.Target.Accuracy = AccuracyTarget(goal)
		p.SetsOrAccuracyPercent = Percent(p.Actual.Accuracy, p.Target.Accuracy)
	}
	return p
}

func gymActuals(sessions []domain.Session) Totals {
	var t Totals
	for _, s := range sessions {
		if s.Discipline != domain.DisciplineGym {
			continue
		}
		t.Minutes += s.TimeSpent
		for _, ex := range s.Exercises {
			t.Sets += float64(ex.Sets)
			t.Reps += float64(ex.Sets * ex.Reps)
		}
	}
	return t
}

func pitchingActuals(sessions []domain.Session) Totals {
	var (
		t       Totals
		entries []domain.PitchEntry
	)
	for _, s := range sessions {
		if s.Discipline != domain.DisciplinePitching {
			continue
		}
		t.Minutes += s.TimeSpent
		for _, pt := range domain.PitchTypes {
			if e, ok := s.Pitches[pt]; ok {
				t.Reps += float64(e.Count)
				entries = append(entries, e)
			}
		}
	}
	t.Accuracy = WeightedAccuracy(entries)
	return t
}

// WeightedAccuracy is Σ(count×accuracy)/Σcount over entries with count > 0.
// Zero-count placeholders do not dilute the mean. No throws yields 0.
func WeightedAccuracy(entries []domain.PitchEntry) float64 {
	var values, weights []float64
	for _, e := range entries {
		if e.Count <= 0 {
			continue
		}
		values = append(values, e.Accuracy)
		weights = append(weights, float64(e.Count))
	}
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, weights)
}

// AccuracyTarget is the goal's overall accuracy target, falling back to the
// mean of its positive per-pitch accuracy targets when the total is unset.
func AccuracyTarget(goal *domain.Goal) float64 {
	if goal == nil {
		return 0
	}
	if goal.Totals.Accuracy > 0 {
		return goal.Totals.Accuracy
	}
	var targets stats.Float64Data
	for _, pg := range goal.PitchGoals {
		if pg.Accuracy > 0 {
			targets = append(targets, pg.Accuracy)
		}
	}
	mean, err := stats.Mean(targets)
	if err != nil {
		return 0
	}
	return mean
}

// ExerciseRing compares the heaviest logged weight for one exercise goal.
type ExerciseRing struct {
	Name    string  `json:"name"`
	Best    float64 `json:"best"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

// PitchRing compares velocity and accuracy for one pitch goal.
type PitchRing struct {
	PitchType       domain.PitchType `json:"pitchType"`
	Label           string           `json:"label"`
	BestSpeed       float64          `json:"bestSpeed"`
	SpeedTarget     float64          `json:"speedTarget"`
	SpeedPercent    float64          `json:"speedPercent"`
	Accuracy        float64          `json:"accuracy"`
	AccuracyTarget  float64          `json:"accuracyTarget"`
	AccuracyPercent float64          `json:"accuracyPercent"`
}

// ItemRings holds the per-item rings for one discipline. Only the slice
// matching the discipline is populated.
type ItemRings struct {
	Discipline domain.Discipline `json:"discipline"`
	Exercises  []ExerciseRing    `json:"exercises,omitempty"`
	Pitches    []PitchRing       `json:"pitches,omitempty"`
}

// ComputeItemRings builds one ring per item goal in goal, using the entire
// session history. A nil goal yields no rings.
func ComputeItemRings(goal *domain.Goal, sessions []domain.Session, discipline domain.Discipline) ItemRings {
	rings := ItemRings{Discipline: discipline}
	if goal == nil || goal.Discipline != discipline {
		return rings
	}
	switch discipline {
	case domain.DisciplineGym:
		for _, eg := range goal.ExerciseGoals {
			best := bestWeight(sessions, eg.Name)
			rings.Exercises = append(rings.Exercises, ExerciseRing{
				Name:    eg.Name,
				Best:    best,
				Target:  eg.Max,
				Percent: Percent(best, eg.Max),
			})
		}
	case domain.DisciplinePitching:
		for _, pg := range goal.PitchGoals {
			pt := PitchTypeForGoal(pg)
			speed, acc := pitchBests(sessions, pt)
			rings.Pitches = append(rings.Pitches, PitchRing{
				PitchType:       pt,
				Label:           pt.Label(),
				BestSpeed:       speed,
				SpeedTarget:     pg.FastestSpeed,
				SpeedPercent:    Percent(speed, pg.FastestSpeed),
				Accuracy:        acc,
				AccuracyTarget:  pg.Accuracy,
				AccuracyPercent: Percent(acc, pg.Accuracy),
			})
		}
	}
	return rings
}

func bestWeight(sessions []domain.Session, name string) float64 {
	best := 0.0
	for _, s := range sessions {
		if s.Discipline != domain.DisciplineGym {
			continue
		}
		for _, ex := range s.Exercises {
			if NamesMatch(ex.Name, name) && ex.MaxWeight > best {
				best = ex.MaxWeight
			}
		}
	}
	return best
}

// pitchBests returns the top speed and the count-weighted accuracy for pt.
func pitchBests(sessions []domain.Session, pt domain.PitchType) (speed, accuracy float64) {
	var entries []domain.PitchEntry
	for _, s := range sessions {
		if s.Discipline != domain.DisciplinePitching {
			continue
		}
		e, ok := s.Pitches[pt]
		if !ok {
			continue
		}
		if e.MaxSpeed > speed {
			speed = e.MaxSpeed
		}
		entries = append(entries, e)
	}
	return speed, WeightedAccuracy(entries)
}
