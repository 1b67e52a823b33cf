package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/service"
)

// number accepts a JSON number or a numeric string. Anything else,
// including null and non-numeric strings, decodes to 0.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = number(f)
	return nil
}

func (n number) float() float64 { return float64(n) }
func (n number) int() int       { return int(math.Round(float64(n))) }

// disciplineFields carries the discipline under its current and legacy keys.
type disciplineFields struct {
	Discipline string `json:"discipline"`
	Type       string `json:"type"`
	Kind       string `json:"kind"`
}

func (d disciplineFields) value() string {
	for _, v := range []string{d.Discipline, d.Type, d.Kind} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD days (UTC midnight).
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be an RFC 3339 timestamp or YYYY-MM-DD", service.ErrValidation, field)
}

type totalsRequest struct {
	Minutes  number `json:"minutes"`
	Reps     number `json:"reps"`
	Sets     number `json:"sets"`
	Accuracy number `json:"accuracy"`
}

type exerciseGoalRequest struct {
	Name    string `json:"name"`
	Minutes number `json:"minutes"`
	Reps    number `json:"reps"`
	Max     number `json:"max"`
}

type pitchGoalRequest struct {
	Name         string `json:"name"`
	PitchType    string `json:"pitchType"`
	Minutes      number `json:"minutes"`
	Reps         number `json:"reps"`
	FastestSpeed number `json:"fastestSpeed"`
	Accuracy     number `json:"accuracy"`
}

type goalRequest struct {
	disciplineFields
	Scope         string                `json:"scope"`
	TargetDate    string                `json:"targetDate"`
	Totals        totalsRequest         `json:"totals"`
	ExerciseGoals []exerciseGoalRequest `json:"exerciseGoals"`
	PitchGoals    []pitchGoalRequest    `json:"pitchGoals"`
}

func (r goalRequest) toInput() (service.GoalInput, error) {
	in := service.GoalInput{
		Discipline: r.value(),
		Scope:      r.Scope,
		Totals: domain.GoalTotals{
			Minutes:  r.Totals.Minutes.float(),
			Reps:     r.Totals.Reps.float(),
			Sets:     r.Totals.Sets.float(),
			Accuracy: r.Totals.Accuracy.float(),
		},
	}
	targetDate, err := parseDate("targetDate", r.TargetDate)
	if err != nil {
		return in, err
	}
	in.TargetDate = targetDate

	// Gym totals carry sets, pitching totals carry accuracy.
	if d, err := domain.ParseDiscipline(in.Discipline); err == nil {
		if d == domain.DisciplineGym {
			in.Totals.Accuracy = 0
		} else {
			in.Totals.Sets = 0
		}
	}

	for _, eg := range r.ExerciseGoals {
		in.ExerciseGoals = append(in.ExerciseGoals, domain.ExerciseGoal{
			Name:    eg.Name,
			Minutes: eg.Minutes.float(),
			Reps:    eg.Reps.float(),
			Max:     eg.Max.float(),
		})
	}
	for _, pg := range r.PitchGoals {
		in.PitchGoals = append(in.PitchGoals, domain.PitchGoal{
			Name:         pg.Name,
			PitchType:    domain.PitchType(strings.TrimSpace(pg.PitchType)),
			Minutes:      pg.Minutes.float(),
			Reps:         pg.Reps.float(),
			FastestSpeed: pg.FastestSpeed.float(),
			Accuracy:     pg.Accuracy.float(),
		})
	}
	return in, nil
}

type exerciseEntryRequest struct {
	Name      string `json:"name"`
	Sets      number `json:"sets"`
	Reps      number `json:"reps"`
	MaxWeight number `json:"maxWeight"`
	VideoKey  string `json:"videoKey"`
}

type pitchEntryRequest struct {
	Count    number `json:"count"`
	Accuracy number `json:"accuracy"`
	MaxSpeed number `json:"maxSpeed"`
	VideoKey string `json:"videoKey"`
}

type sessionRequest struct {
	disciplineFields
	Date        string                       `json:"date"`
	TimeSpent   number                       `json:"timeSpent"`
	SessionType string                       `json:"sessionType"`
	Exercises   []exerciseEntryRequest       `json:"exercises"`
	Pitches     map[string]pitchEntryRequest `json:"pitches"`
}

func (r sessionRequest) toInput() (service.SessionInput, error) {
	in := service.SessionInput{
		Discipline:  r.value(),
		TimeSpent:   r.TimeSpent.float(),
		SessionType: r.SessionType,
	}
	date, err := parseDate("date", r.Date)
	if err != nil {
		return in, err
	}
	in.Date = date

	for _, ex := range r.Exercises {
		in.Exercises = append(in.Exercises, domain.ExerciseEntry{
			Name:      ex.Name,
			Sets:      ex.Sets.int(),
			Reps:      ex.Reps.int(),
			MaxWeight: ex.MaxWeight.float(),
			VideoKey:  strings.TrimSpace(ex.VideoKey),
		})
	}
	if len(r.Pitches) > 0 {
		in.Pitches = make(map[string]domain.PitchEntry, len(r.Pitches))
		for code, p := range r.Pitches {
			in.Pitches[code] = domain.PitchEntry{
				Count:    p.Count.int(),
				Accuracy: p.Accuracy.float(),
				MaxSpeed: p.MaxSpeed.float(),
				VideoKey: strings.TrimSpace(p.VideoKey),
			}
		}
	}
	return in, nil
}

// assistantRequest accepts the question under any of its historical keys.
type assistantRequest struct {
	Question string `json:"question"`
	Q        string `json:"q"`
	Message  string `json:"message"`
	Text     string `json:"text"`
}

func (r assistantRequest) question() string {
	for _, v := range []string{r.Question, r.Q, r.Message, r.Text} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
