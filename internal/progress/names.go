package progress

import (
	"regexp"
	"strings"
	"unicode"

	"guardians/training-tracker/internal/domain"
)

// NormalizeName lower-cases s and drops all whitespace, so "Back Rows" and
// "backrows" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NamesMatch reports whether two exercise names refer to the same movement.
// Normalized names match when they are equal or one contains the other.
//
// Containment is deliberately loose: "Row" matches "Rows" and "Back Rows",
// but a very short name such as "Dip" will also match "Dumbbell Dips" and
// "Hip Dips". Callers accept that false-positive risk.
func NamesMatch(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

var pitchKeywords = []struct {
	keyword string
	code    domain.PitchType
}{
	{"fastball", domain.PitchFastball},
	{"slider", domain.PitchSlider},
	{"changeup", domain.PitchChangeup},
	{"curve", domain.PitchCurveball},
}

var parenCode = regexp.MustCompile(`\(([^)]+)\)`)

// PitchTypeForGoal derives the pitch code a goal targets. Order: explicit
// code, keyword in the name, parenthesized abbreviation, then the raw name.
// The last case yields a value outside the enum that matches nothing.
func PitchTypeForGoal(pg domain.PitchGoal) domain.PitchType {
	if code, ok := domain.ParsePitchType(string(pg.PitchType)); ok {
		return code
	}
	name := NormalizeName(pg.Name)
	for _, kw := range pitchKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.code
		}
	}
	if m := parenCode.FindStringSubmatch(pg.Name); m != nil && strings.TrimSpace(m[1]) != "" {
		code, _ := domain.ParsePitchType(m[1])
		return code
	}
	return domain.PitchType(strings.TrimSpace(pg.Name))
}

// findExerciseGoal returns the first exercise goal whose name matches item.
func findExerciseGoal(g *domain.Goal, item string) (domain.ExerciseGoal, bool) {
	if g == nil {
		return domain.ExerciseGoal{}, false
	}
	for _, eg := range g.ExerciseGoals {
		if NamesMatch(eg.Name, item) {
			return eg, true
		}
	}
	return domain.ExerciseGoal{}, false
}

// findPitchGoal returns the first pitch goal targeting pt.
func findPitchGoal(g *domain.Goal, pt domain.PitchType) (domain.PitchGoal, bool) {
	if g == nil {
		return domain.PitchGoal{}, false
	}
	for _, pg := range g.PitchGoals {
		if PitchTypeForGoal(pg) == pt {
			return pg, true
		}
	}
	return domain.PitchGoal{}, false
}
