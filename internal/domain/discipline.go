package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks a request that is missing or carries malformed fields.
// Wrap it with a descriptive message via invalidf.
var ErrValidation = errors.New("validation error")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Discipline is the training domain of a goal or session.
type Discipline string

const (
	DisciplineGym      Discipline = "gym"
	DisciplinePitching Discipline = "pitching"
)

// ParseDiscipline accepts "gym", "pitching" and the legacy "baseball" alias.
func ParseDiscipline(raw string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", invalidf("discipline is required")
	case string(DisciplineGym):
		return DisciplineGym, nil
	case string(DisciplinePitching), "baseball":
		return DisciplinePitching, nil
	default:
		return "", invalidf("unknown discipline %q", raw)
	}
}

// Scope says whether a goal is open-ended or tied to a calendar day.
type Scope string

const (
	ScopeLifetime Scope = "lifetime"
	ScopeDated    Scope = "dated"
)

// ParseScope defaults an empty value to lifetime.
func ParseScope(raw string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ScopeLifetime):
		return ScopeLifetime, nil
	case string(ScopeDated):
		return ScopeDated, nil
	default:
		return "", invalidf("unknown goal scope %q", raw)
	}
}

// PitchType is one of the four tracked pitch codes.
type PitchType string

const (
	PitchFastball  PitchType = "FB"
	PitchSlider    PitchType = "SL"
	PitchChangeup  PitchType = "CH"
	PitchCurveball PitchType = "CB"
)

// PitchTypes lists the codes in display order.
var PitchTypes = []PitchType{PitchFastball, PitchSlider, PitchChangeup, PitchCurveball}

var pitchLabels = map[PitchType]string{
	PitchFastball:  "Fastball (FB)",
	PitchSlider:    "Slider (SL)",
	PitchChangeup:  "Changeup (CH)",
	PitchCurveball: "Curveball (CB)",
}

// ParsePitchType matches a code exactly (case and surrounding space ignored).
func ParsePitchType(raw string) (PitchType, bool) {
	pt := PitchType(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := pitchLabels[pt]
	return pt, ok
}

// Label returns a human readable name such as "Slider (SL)".
func (p PitchType) Label() string {
	if l, ok := pitchLabels[p]; ok {
		return l
	}
	return string(p)
}
