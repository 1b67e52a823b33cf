package progress

import (
	"strings"
	"time"

	"guardians/training-tracker/internal/domain"
)

// Selection picks which goal the progress rings compare against: the live
// lifetime goal, or one specific dated goal by id.
type Selection struct {
	GoalID string // empty means lifetime
}

// Lifetime is the default selection.
var Lifetime = Selection{}

// ParseSelection maps "" and "lifetime" to Lifetime; anything else is a goal id.
func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(domain.ScopeLifetime)) {
		return Lifetime
	}
	return Selection{GoalID: raw}
}

// IsLifetime reports whether s selects the lifetime goal.
func (s Selection) IsLifetime() bool {
	return s.GoalID == ""
}

func (s Selection) String() string {
	if s.IsLifetime() {
		return string(domain.ScopeLifetime)
	}
	return s.GoalID
}

// partition splits the discipline's goals into lifetime and usable dated goals.
// Dated goals missing a target date are dropped.
func partition(goals []domain.Goal, discipline domain.Discipline) (lifetime, dated []*domain.Goal) {
	for i := range goals {
		g := &goals[i]
		if g.Discipline != discipline {
			continue
		}
		switch {
		case g.IsLifetime():
			lifetime = append(lifetime, g)
		case g.IsDated():
			dated = append(dated, g)
		}
	}
	return lifetime, dated
}

// latest returns the candidate with the most recent CreatedAt.
func latest(candidates []*domain.Goal) *domain.Goal {
	var best *domain.Goal
	for _, g := range candidates {
		if best == nil || g.CreatedAt.After(best.CreatedAt) {
			best = g
		}
	}
	return best
}

// Resolve selects the single goal that applies to discipline under sel.
// A nil result means "no goal set" and renders as zero progress.
func Resolve(goals []domain.Goal, discipline domain.Discipline, sel Selection) *domain.Goal {
	lifetime, dated := partition(goals, discipline)
	if sel.IsLifetime() {
		return latest(lifetime)
	}
	var matches []*domain.Goal
	for _, g := range dated {
		if g.ID.Hex() == sel.GoalID {
			matches = append(matches, g)
		}
	}
	return latest(matches)
}

// ResolveClosestFutureDated is the threshold policy used by charts: the dated
// goal with the soonest target date strictly after now, else the latest
// lifetime goal, else nil.
func ResolveClosestFutureDated(goals []domain.Goal, discipline domain.Discipline, now time.Time) *domain.Goal {
	candidates := ThresholdCandidates(goals, discipline, now)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// ThresholdCandidates returns the fallback chain behind
// ResolveClosestFutureDated in priority order: closest future dated goal
// first, then the latest lifetime goal. Either may be absent.
func ThresholdCandidates(goals []domain.Goal, discipline domain.Discipline, now time.Time) []*domain.Goal {
	lifetime, dated := partition(goals, discipline)

	var next *domain.Goal
	for _, g := range dated {
		if !g.TargetDate.After(now) {
			continue
		}
		switch {
		case next == nil, g.TargetDate.Before(*next.TargetDate):
			next = g
		case g.TargetDate.Equal(*next.TargetDate) && g.CreatedAt.After(next.CreatedAt):
			next = g
		}
	}

	var chain []*domain.Goal
	if next != nil {
		chain = append(chain, next)
	}
	if l := latest(lifetime); l != nil {
		chain = append(chain, l)
	}
	return chain
}
