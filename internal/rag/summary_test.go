package rag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"guardians/training-tracker/internal/domain"
)

func TestSessionSummary_Gym(t *testing.T) {
	s := &domain.Session{
		Discipline:  domain.DisciplineGym,
		Date:        time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC),
		TimeSpent:   60,
		SessionType: "Lower body",
		Exercises: []domain.ExerciseEntry{
			{Name: "Squat", Sets: 3, Reps: 5, MaxWeight: 225},
			{Name: "RDL", Sets: 3, Reps: 8},
			{Name: "Lunge", Sets: 2, Reps: 10},
			{Name: "Calf raise", Sets: 3, Reps: 15},
			{Name: "Plank"},
		},
	}
	got := SessionSummary(s)
	assert.Equal(t,
		"Gym session — 2024-05-03 — Lower body — 60 minutes — Squat 3x5, max 225 · RDL 3x8 · Lunge 2x10 · Calf raise 3x15",
		got)
}

func TestSessionSummary_Pitching(t *testing.T) {
	s := &domain.Session{
		Discipline: domain.DisciplinePitching,
		Date:       time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		Pitches: map[domain.PitchType]domain.PitchEntry{
			domain.PitchSlider:   {Count: 10, Accuracy: 55},
			domain.PitchFastball: {Count: 20, MaxSpeed: 86.5, Accuracy: 70},
		},
	}
	assert.Equal(t,
		"Pitching session — 2024-05-04 — Total pitches 30 — 20 FB, max 86.5 mph, accuracy 70% · 10 SL, accuracy 55% — unspecified type",
		SessionSummary(s))
}

func TestGoalSummaries(t *testing.T) {
	assert.Equal(t,
		"Squat — target max 250 — for 5 reps — and 120 cumulative minutes of work",
		ExerciseGoalSummary(domain.ExerciseGoal{Name: "Squat", Max: 250, Reps: 5, Minutes: 120}))
	assert.Equal(t,
		"Heater — (FB) — target velo 90 mph — target accuracy 65%",
		PitchGoalSummary(domain.PitchGoal{Name: "Heater", PitchType: domain.PitchFastball, FastestSpeed: 90, Accuracy: 65}))
	assert.Equal(t, "Knuckler", PitchGoalSummary(domain.PitchGoal{Name: "Knuckler"}))
}

func TestProfileSummary(t *testing.T) {
	assert.Equal(t, "No onboarding profile found yet.", ProfileSummary(nil))

	injured := true
	p := &domain.TrainingProfile{
		Level:        "College",
		Handedness:   "Right",
		Priorities:   []string{"velocity", "command"},
		TrainingDays: 4,
		HasInjury:    &injured,
		InjuryArea:   "elbow",
	}
	assert.Equal(t,
		"Level: College · Handedness: Right · Priorities: velocity, command · Training days per week: 4 · Recent injury: elbow, recovery plan: not specified",
		ProfileSummary(p))

	healthy := false
	assert.Equal(t, "No current injuries reported.", ProfileSummary(&domain.TrainingProfile{HasInjury: &healthy}))
}

func TestItemIDs(t *testing.T) {
	id := primitive.NewObjectID()
	goal := &domain.Goal{ID: id}
	assert.Equal(t, "exercise_goal:"+id.Hex()+":backrows", ExerciseGoalItemID(goal, domain.ExerciseGoal{Name: "Back Rows"}))
	assert.Equal(t, "pitch_goal:"+id.Hex()+":SL", PitchGoalItemID(goal, domain.PitchSlider))
	assert.Equal(t, "gym_session:"+id.Hex(), GymSessionItemID(&domain.Session{ID: id}))
	assert.Equal(t, "coach_doc:"+id.Hex()+":2", CoachDocItemID(&domain.CoachDoc{ID: id}, 2))
}

func TestChunkText(t *testing.T) {
	assert.Empty(t, ChunkText("   ", 100))
	assert.Equal(t, []string{"short note"}, ChunkText("short note", 100))

	para := strings.Repeat("a", 70) + "\n" + strings.Repeat("b", 70)
	chunks := ChunkText(para, 100)
	assert.Equal(t, []string{strings.Repeat("a", 70), strings.Repeat("b", 70)}, chunks)

	// break too early in the window: hard cut at maxLen
	early := strings.Repeat("c", 10) + "\n" + strings.Repeat("d", 200)
	chunks = ChunkText(early, 100)
	assert.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
	}

	sentences := strings.Repeat("x", 80) + ". " + strings.Repeat("y", 50)
	chunks = ChunkText(sentences, 100)
	assert.Equal(t, strings.Repeat("x", 80)+".", chunks[0])
}
