package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/progress"
)

func newTestProgressService(f *fixture) *progressService {
	svc := NewProgressService(f.goals, f.sessions).(*progressService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func squatSessions() []domain.Session {
	var out []domain.Session
	for i, w := range []float64{200, 210, 225} {
		out = append(out, domain.Session{
			ID:         primitive.NewObjectID(),
			UserID:     "u1",
			Discipline: domain.DisciplineGym,
			Date:       time.Date(2024, 6, 1+i, 9, 0, 0, 0, time.UTC),
			TimeSpent:  30,
			Exercises:  []domain.ExerciseEntry{{Name: "Squat", Sets: 3, Reps: 5, MaxWeight: w}},
		})
	}
	return out
}

func TestProgress_Lifetime(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)
	goalID := primitive.NewObjectID()

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return([]domain.Goal{{
		ID: goalID, UserID: "u1", Discipline: domain.DisciplineGym, Scope: domain.ScopeLifetime,
		Totals:    domain.GoalTotals{Minutes: 180, Reps: 40, Sets: 6},
		CreatedAt: fixedNow.AddDate(0, -1, 0),
	}}, nil)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(squatSessions(), nil)

	res, err := svc.Progress(context.Background(), "u1", "gym", "")
	require.NoError(t, err)
	assert.Equal(t, "lifetime", res.Selection)
	require.NotNil(t, res.GoalID)
	assert.Equal(t, goalID.Hex(), *res.GoalID)
	assert.InDelta(t, 50.0, res.MinutesPercent, 1e-9)
	assert.Equal(t, 45.0, res.Actual.Reps)
	assert.Equal(t, 100.0, res.RepsPercent)
	assert.Equal(t, 100.0, res.SetsOrAccuracyPercent)
}

func TestProgress_NoGoalIsNotAnError(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(nil, nil)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(squatSessions(), nil)

	res, err := svc.Progress(context.Background(), "u1", "gym", "lifetime")
	require.NoError(t, err)
	assert.Nil(t, res.GoalID)
	assert.Zero(t, res.MinutesPercent)
	assert.Equal(t, 90.0, res.Actual.Minutes)
}

func TestProgress_UnknownGoalIDRendersZeroProgress(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(nil, nil).Times(2)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(squatSessions(), nil).Times(2)

	goalID := primitive.NewObjectID().Hex()
	res, err := svc.Progress(context.Background(), "u1", "gym", goalID)
	require.NoError(t, err)
	assert.Nil(t, res.GoalID)
	assert.Equal(t, goalID, res.Selection)
	assert.Zero(t, res.MinutesPercent)
	assert.Equal(t, 90.0, res.Actual.Minutes)

	rings, err := svc.ItemRings(context.Background(), "u1", "gym", goalID)
	require.NoError(t, err)
	assert.Nil(t, rings.GoalID)
}

func TestProgress_StoreFailure(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)
	boom := errors.New("store down")

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(nil, boom)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(nil, nil).AnyTimes()

	_, err := svc.Progress(context.Background(), "u1", "gym", "")
	assert.ErrorIs(t, err, boom)
}

func TestItemRings_Pitching(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplinePitching).Return([]domain.Goal{{
		ID: primitive.NewObjectID(), UserID: "u1", Discipline: domain.DisciplinePitching, Scope: domain.ScopeLifetime,
		PitchGoals: []domain.PitchGoal{{Name: "Fastball", PitchType: domain.PitchFastball, FastestSpeed: 90, Accuracy: 70}},
	}}, nil)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplinePitching).Return([]domain.Session{{
		UserID: "u1", Discipline: domain.DisciplinePitching, Date: fixedNow.AddDate(0, 0, -1),
		Pitches: map[domain.PitchType]domain.PitchEntry{domain.PitchFastball: {Count: 20, Accuracy: 70, MaxSpeed: 81}},
	}}, nil)

	res, err := svc.ItemRings(context.Background(), "u1", "baseball", "")
	require.NoError(t, err)
	require.Len(t, res.Pitches, 1)
	assert.Equal(t, domain.PitchFastball, res.Pitches[0].PitchType)
	assert.InDelta(t, 90.0, res.Pitches[0].SpeedPercent, 1e-9)
	assert.Equal(t, 100.0, res.Pitches[0].AccuracyPercent)
}

func TestHistory_SquatThreshold(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return([]domain.Goal{{
		ID: primitive.NewObjectID(), UserID: "u1", Discipline: domain.DisciplineGym, Scope: domain.ScopeLifetime,
		ExerciseGoals: []domain.ExerciseGoal{{Name: "Squat", Max: 250}},
	}}, nil)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplineGym).Return(squatSessions(), nil)

	h, err := svc.History(context.Background(), "u1", "gym", "Squat", "all")
	require.NoError(t, err)
	require.Len(t, h.Points, 3)
	assert.Equal(t, 225.0, h.Points[2].MaxWeight)
	assert.Equal(t, 90.0, h.Points[2].CumulativeMinutes)
	require.NotNil(t, h.Threshold)
	assert.Equal(t, 250.0, h.Threshold.Max)
	assert.Equal(t, progress.RangeAll, h.Range)
}

func TestHistory_Validation(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)

	_, err := svc.History(context.Background(), "u1", "gym", " ", "all")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.History(context.Background(), "u1", "gym", "Squat", "decade")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.History(context.Background(), "u1", "", "Squat", "all")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.History(context.Background(), "u1", "pitching", "Knuckle", "all")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHistory_PitchItemByName(t *testing.T) {
	f := newFixture(t)
	svc := newTestProgressService(f)

	f.goals.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplinePitching).Return(nil, nil)
	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.DisciplinePitching).Return(nil, nil)

	h, err := svc.History(context.Background(), "u1", "pitching", "Slider", "all")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PitchSlider), h.Item)
	assert.Empty(t, h.Points)
}
