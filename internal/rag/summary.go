package rag

import (
	"fmt"
	"strconv"
	"strings"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/progress"
)

const (
	summarySep     = " — "
	itemSep        = " · "
	maxGymExercise = 4
)

// Vector item ids. Re-indexing the same source overwrites its item.
func GymSessionItemID(s *domain.Session) string   { return "gym_session:" + s.ID.Hex() }
func PitchSessionItemID(s *domain.Session) string { return "pitch_session:" + s.ID.Hex() }

func ExerciseGoalItemID(goal *domain.Goal, eg domain.ExerciseGoal) string {
	return fmt.Sprintf("exercise_goal:%s:%s", goal.ID.Hex(), progress.NormalizeName(eg.Name))
}

func PitchGoalItemID(goal *domain.Goal, pt domain.PitchType) string {
	return fmt.Sprintf("pitch_goal:%s:%s", goal.ID.Hex(), pt)
}

// GoalItemPrefix is the id prefix shared by every item of g.
func GoalItemPrefix(goal *domain.Goal) string {
	if goal.Discipline == domain.DisciplinePitching {
		return fmt.Sprintf("pitch_goal:%s:", goal.ID.Hex())
	}
	return fmt.Sprintf("exercise_goal:%s:", goal.ID.Hex())
}

func CoachDocItemID(doc *domain.CoachDoc, chunk int) string {
	return fmt.Sprintf("coach_doc:%s:%d", doc.ID.Hex(), chunk)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func dateString(s *domain.Session) string {
	if s.Date.IsZero() {
		return "unknown date"
	}
	return s.Date.UTC().Format("2006-01-02")
}

// SessionSummary renders one line describing a session for retrieval.
func SessionSummary(s *domain.Session) string {
	if s.Discipline == domain.DisciplinePitching {
		return pitchingSessionSummary(s)
	}
	return gymSessionSummary(s)
}

func gymSessionSummary(s *domain.Session) string {
	sessionType := s.SessionType
	if sessionType == "" {
		sessionType = "unspecified focus"
	}
	minutes := "time not recorded"
	if s.TimeSpent > 0 {
		minutes = num(s.TimeSpent) + " minutes"
	}

	var exercises []string
	for _, ex := range s.Exercises {
		if len(exercises) == maxGymExercise {
			break
		}
		if strings.TrimSpace(ex.Name) == "" {
			continue
		}
		desc := ex.Name
		if ex.Sets > 0 || ex.Reps > 0 {
			desc += fmt.Sprintf(" %dx%d", ex.Sets, ex.Reps)
		}
		if ex.MaxWeight > 0 {
			desc += ", max " + num(ex.MaxWeight)
		}
		exercises = append(exercises, desc)
	}
	detail := "no exercise detail recorded"
	if len(exercises) > 0 {
		detail = strings.Join(exercises, itemSep)
	}

	return strings.Join([]string{"Gym session" + summarySep + dateString(s), sessionType, minutes, detail}, summarySep)
}

func pitchingSessionSummary(s *domain.Session) string {
	parts := []string{"Pitching session" + summarySep + dateString(s)}
	if total := s.CountPitches(); total > 0 {
		parts = append(parts, fmt.Sprintf("Total pitches %d", total))
	}

	var pitches []string
	for _, pt := range domain.PitchTypes {
		e, ok := s.Pitches[pt]
		if !ok {
			continue
		}
		pieces := []string{fmt.Sprintf("%d %s", e.Count, pt)}
		if e.MaxSpeed > 0 {
			pieces = append(pieces, "max "+num(e.MaxSpeed)+" mph")
		}
		if e.Accuracy > 0 {
			pieces = append(pieces, "accuracy "+num(e.Accuracy)+"%")
		}
		pitches = append(pitches, strings.Join(pieces, ", "))
	}
	if len(pitches) > 0 {
		parts = append(parts, strings.Join(pitches, itemSep))
	} else {
		parts = append(parts, "no pitch detail recorded")
	}

	sessionType := s.SessionType
	if sessionType == "" {
		sessionType = "unspecified type"
	}
	return strings.Join(append(parts, sessionType), summarySep)
}

// ExerciseGoalSummary renders e.g. "Squat — target max 250 — for 5 reps".
func ExerciseGoalSummary(eg domain.ExerciseGoal) string {
	name := eg.Name
	if name == "" {
		name = "Strength goal"
	}
	parts := []string{name}
	if eg.Max > 0 {
		parts = append(parts, "target max "+num(eg.Max))
	}
	if eg.Reps > 0 {
		parts = append(parts, "for "+num(eg.Reps)+" reps")
	}
	if eg.Minutes > 0 {
		parts = append(parts, "and "+num(eg.Minutes)+" cumulative minutes of work")
	}
	return strings.Join(parts, summarySep)
}

// PitchGoalSummary renders e.g. "Fastball — (FB) — target velo 90 mph".
func PitchGoalSummary(pg domain.PitchGoal) string {
	name := pg.Name
	if name == "" {
		name = "Pitching goal"
	}
	parts := []string{name}
	if pt, ok := domain.ParsePitchType(string(progress.PitchTypeForGoal(pg))); ok {
		parts = append(parts, "("+string(pt)+")")
	}
	if pg.FastestSpeed > 0 {
		parts = append(parts, "target velo "+num(pg.FastestSpeed)+" mph")
	}
	if pg.Accuracy > 0 {
		parts = append(parts, "target accuracy "+num(pg.Accuracy)+"%")
	}
	return strings.Join(parts, summarySep)
}

// ProfileSummary describes the onboarding answers for the chat prompt.
func ProfileSummary(p *domain.TrainingProfile) string {
	if p == nil {
		return "No onboarding profile found yet."
	}

	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("Level", p.Level)
	add("Primary role", p.PrimaryRole)
	add("Handedness", p.Handedness)
	add("Pitching schedule", p.PitchingSchedule)
	if len(p.Priorities) > 0 {
		add("Priorities", strings.Join(p.Priorities, ", "))
	}
	add("Gym level", p.GymLevel)
	add("Workout type", p.WorkoutType)
	if p.TrainingDays > 0 {
		add("Training days per week", strconv.Itoa(p.TrainingDays))
	}

	switch {
	case p.HasInjury != nil && *p.HasInjury:
		area, plan := p.InjuryArea, p.InjuryRecovery
		if area == "" {
			area = "unspecified area"
		}
		if plan == "" {
			plan = "not specified"
		}
		parts = append(parts, fmt.Sprintf("Recent injury: %s, recovery plan: %s", area, plan))
	case p.HasInjury != nil:
		parts = append(parts, "No current injuries reported.")
	}
	return strings.Join(parts, itemSep)
}

// ChunkText splits text into pieces of at most maxLen runes. A piece ends at
// the last newline in its window, or the last ". " when there is no newline,
// provided that break lies past 60% of the window. Empty pieces are dropped.
func ChunkText(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = 900
	}
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}

		sliceEnd := end
		if end < len(runes) {
			window := string(runes[start:end])
			brk := strings.LastIndex(window, "\n")
			if brk == -1 {
				brk = strings.LastIndex(window, ". ")
			}
			if brk != -1 {
				brkRunes := len([]rune(window[:brk]))
				if float64(brkRunes) > float64(maxLen)*0.6 {
					sliceEnd = start + brkRunes + 1
				}
			}
		}

		if chunk := strings.TrimSpace(string(runes[start:sliceEnd])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = sliceEnd
	}
	return chunks
}
