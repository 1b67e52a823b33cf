package progress

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"guardians/training-tracker/internal/domain"
)

// Range is the chart window applied to history points.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
	RangeAll   Range = "all"
)

// ParseRange defaults an empty value to RangeAll.
func ParseRange(raw string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(raw))); r {
	case "":
		return RangeAll, nil
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown range %q", domain.ErrValidation, raw)
	}
}

// Since returns the earliest session date kept by r, or the zero time for RangeAll.
func (r Range) Since(now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	case RangeYear:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// HistoryPoint is one session's contribution to an item chart.
type HistoryPoint struct {
	Date              time.Time `json:"date"`
	SessionID         string    `json:"sessionId"`
	Minutes           float64   `json:"minutes"`
	CumulativeMinutes float64   `json:"cumulativeMinutes"`

	// gym
	MaxWeight float64 `json:"maxWeight,omitempty"`
	Reps      int     `json:"reps,omitempty"`

	// pitching
	MaxSpeed float64 `json:"maxSpeed,omitempty"`
	Accuracy float64 `json:"accuracy,omitempty"`
	Count    int     `json:"count,omitempty"`
}

// Threshold is the dashed goal line. Gym charts use Max and Minutes,
// pitching charts use Speed and Accuracy.
type Threshold struct {
	GoalID   string       `json:"goalId"`
	Scope    domain.Scope `json:"scope"`
	Max      float64      `json:"max,omitempty"`
	Minutes  float64      `json:"minutes,omitempty"`
	Speed    float64      `json:"speed,omitempty"`
	Accuracy float64      `json:"accuracy,omitempty"`
}

// History is the chart payload for one exercise or pitch type.
type History struct {
	Discipline domain.Discipline `json:"discipline"`
	Item       string            `json:"item"`
	Range      Range             `json:"range"`
	Points     []HistoryPoint    `json:"points"`
	Threshold  *Threshold        `json:"threshold"`
}

// BuildHistory charts item across sessions. Points are sorted by date and
// restricted to rng; cumulative minutes restart at the beginning of the range.
// The threshold comes from the first goal in ThresholdCandidates that names
// the item.
func BuildHistory(item string, sessions []domain.Session, discipline domain.Discipline, goals []domain.Goal, rng Range, now time.Time) History {
	h := History{Discipline: discipline, Item: item, Range: rng, Points: []HistoryPoint{}}
	candidates := ThresholdCandidates(goals, discipline, now)

	var points []HistoryPoint
	switch discipline {
	case domain.DisciplineGym:
		points = gymPoints(item, sessions)
		for _, g := range candidates {
			if eg, ok := findExerciseGoal(g, item); ok {
				h.Threshold = &Threshold{GoalID: g.ID.Hex(), Scope: g.Scope, Max: eg.Max, Minutes: eg.Minutes}
				break
			}
		}
	case domain.DisciplinePitching:
		pt := PitchTypeForItem(item)
		h.Item = string(pt)
		points = pitchPoints(pt, sessions)
		for _, g := range candidates {
			if pg, ok := findPitchGoal(g, pt); ok {
				h.Threshold = &Threshold{GoalID: g.ID.Hex(), Scope: g.Scope, Speed: pg.FastestSpeed, Accuracy: pg.Accuracy}
				break
			}
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	since := rng.Since(now)
	cumulative := 0.0
	for _, p := range points {
		if p.Date.Before(since) {
			continue
		}
		cumulative += p.Minutes
		p.CumulativeMinutes = cumulative
		h.Points = append(h.Points, p)
	}
	return h
}

// PitchTypeForItem accepts a pitch code ("sl") or a name ("Slider").
func PitchTypeForItem(item string) domain.PitchType {
	if code, ok := domain.ParsePitchType(item); ok {
		return code
	}
	return PitchTypeForGoal(domain.PitchGoal{Name: item})
}

func gymPoints(item string, sessions []domain.Session) []HistoryPoint {
	var points []HistoryPoint
	for _, s := range sessions {
		if s.Discipline != domain.DisciplineGym || s.Date.IsZero() {
			continue
		}
		var (
			found bool
			p     = HistoryPoint{Date: s.Date, SessionID: s.ID.Hex(), Minutes: s.TimeSpent}
		)
		for _, ex := range s.Exercises {
			if !NamesMatch(item, ex.Name) {
				continue
			}
			if !found || ex.MaxWeight > p.MaxWeight {
				p.MaxWeight = ex.MaxWeight
				p.Reps = ex.Reps
			}
			found = true
		}
		if found {
			points = append(points, p)
		}
	}
	return points
}

func pitchPoints(pt domain.PitchType, sessions []domain.Session) []HistoryPoint {
	var points []HistoryPoint
	for _, s := range sessions {
		if s.Discipline != domain.DisciplinePitching || s.Date.IsZero() {
			continue
		}
		e, ok := s.Pitches[pt]
		if !ok {
			continue
		}
		points = append(points, HistoryPoint{
			Date:      s.Date,
			SessionID: s.ID.Hex(),
			Minutes:   s.TimeSpent,
			MaxSpeed:  e.MaxSpeed,
			Accuracy:  e.Accuracy,
			Count:     e.Count,
		})
	}
	return points
}
