package rag_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/rag"
	ragmocks "guardians/training-tracker/internal/rag/mocks"
	"guardians/training-tracker/internal/repository"
	repomocks "guardians/training-tracker/internal/repository/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var rateLimited = fmt.Errorf("embed: %w", rag.ErrRateLimited)

func TestRetryingEmbedder_RetriesRateLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := ragmocks.NewMockEmbedder(ctrl)

	gomock.InOrder(
		inner.EXPECT().Embed(gomock.Any(), "hello").Return(nil, rateLimited),
		inner.EXPECT().Embed(gomock.Any(), "hello").Return(nil, rateLimited),
		inner.EXPECT().Embed(gomock.Any(), "hello").Return([]float32{1, 2}, nil),
	)

	retries := 0
	e := rag.NewRetryingEmbedder(inner, 2, time.Millisecond, func() { retries++ })
	v, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, v)
	assert.Equal(t, 2, retries)
}

func TestRetryingEmbedder_GivesUpAfterMaxRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := ragmocks.NewMockEmbedder(ctrl)
	inner.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, rateLimited).Times(3)

	e := rag.NewRetryingEmbedder(inner, 2, time.Millisecond, nil)
	_, err := e.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, rag.ErrRateLimited)
}

func TestRetryingEmbedder_DoesNotRetryUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := ragmocks.NewMockEmbedder(ctrl)
	inner.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, rag.ErrUnavailable).Times(1)

	e := rag.NewRetryingEmbedder(inner, 2, time.Millisecond, nil)
	_, err := e.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, rag.ErrUnavailable)
}

func TestIndexer_IndexGoalSkipsFailedItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)
	m := metrics.NewTestManager()

	goal := &domain.Goal{
		ID:         primitive.NewObjectID(),
		UserID:     "u1",
		Discipline: domain.DisciplineGym,
		Scope:      domain.ScopeLifetime,
		ExerciseGoals: []domain.ExerciseGoal{
			{Name: "Squat", Max: 250},
			{Name: "Bench", Max: 200},
		},
	}

	embedder.EXPECT().Embed(gomock.Any(), "Squat — target max 250").Return([]float32{1}, nil)
	embedder.EXPECT().Embed(gomock.Any(), "Bench — target max 200").Return(nil, rateLimited)
	index.EXPECT().Upsert(gomock.Any(), "u1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, items []domain.VectorItem) error {
			require.Len(t, items, 1)
			assert.Equal(t, "exercise_goal:"+goal.ID.Hex()+":squat", items[0].ID)
			assert.Equal(t, "goal", items[0].Metadata["type"])
			assert.Equal(t, "Squat — target max 250", items[0].Metadata["summary"])
			return nil
		})
	prefix := "exercise_goal:" + goal.ID.Hex() + ":"
	index.EXPECT().DeleteByPrefix(gomock.Any(), "u1", prefix, []string{prefix + "squat", prefix + "bench"}).Return(int64(0), nil)

	err := rag.NewIndexer(embedder, index, m).IndexGoal(context.Background(), goal)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.ErrorIs(t, err, rag.ErrRateLimited)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterIndexingFailures.WithLabelValues("goal")))
}

func TestIndexer_IndexGoalPrunesRemovedItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)

	goal := &domain.Goal{
		ID:         primitive.NewObjectID(),
		UserID:     "u1",
		Discipline: domain.DisciplinePitching,
		Scope:      domain.ScopeLifetime,
		PitchGoals: []domain.PitchGoal{{Name: "Fastball (FB)", PitchType: domain.PitchFastball, FastestSpeed: 90}},
	}
	prefix := "pitch_goal:" + goal.ID.Hex() + ":"

	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	gomock.InOrder(
		index.EXPECT().Upsert(gomock.Any(), "u1", gomock.Len(1)).Return(nil),
		index.EXPECT().DeleteByPrefix(gomock.Any(), "u1", prefix, []string{prefix + "FB"}).Return(int64(2), nil),
	)

	require.NoError(t, rag.NewIndexer(embedder, index, nil).IndexGoal(context.Background(), goal))
}

func TestIndexer_IndexGoalWithoutItemsClearsPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := repomocks.NewMockVectorRepository(ctrl)

	goal := &domain.Goal{ID: primitive.NewObjectID(), UserID: "u1", Discipline: domain.DisciplineGym}
	index.EXPECT().DeleteByPrefix(gomock.Any(), "u1", "exercise_goal:"+goal.ID.Hex()+":", nil).Return(int64(3), nil)

	require.NoError(t, rag.NewIndexer(ragmocks.NewMockEmbedder(ctrl), index, nil).IndexGoal(context.Background(), goal))
}

func TestIndexer_IndexGoalSkipsPruneWhenUpsertFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)

	goal := &domain.Goal{
		ID:            primitive.NewObjectID(),
		UserID:        "u1",
		Discipline:    domain.DisciplineGym,
		ExerciseGoals: []domain.ExerciseGoal{{Name: "Squat", Max: 250}},
	}
	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	index.EXPECT().Upsert(gomock.Any(), "u1", gomock.Len(1)).Return(errors.New("mongo down"))

	err := rag.NewIndexer(embedder, index, nil).IndexGoal(context.Background(), goal)
	assert.ErrorContains(t, err, "upsert goal")
}

func TestIndexer_IndexSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)

	s := &domain.Session{
		ID:         primitive.NewObjectID(),
		UserID:     "u1",
		Discipline: domain.DisciplinePitching,
		Date:       time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		Pitches:    map[domain.PitchType]domain.PitchEntry{domain.PitchFastball: {Count: 12}},
	}

	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0.1, 0.2}, nil)
	index.EXPECT().Upsert(gomock.Any(), "u1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, items []domain.VectorItem) error {
			require.Len(t, items, 1)
			assert.Equal(t, "pitch_session:"+s.ID.Hex(), items[0].ID)
			assert.Equal(t, "12", items[0].Metadata["totalPitches"])
			return nil
		})

	require.NoError(t, rag.NewIndexer(embedder, index, nil).IndexSession(context.Background(), s))
}

func TestIndexer_IndexCoachDoc(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)

	doc := &domain.CoachDoc{ID: primitive.NewObjectID(), UserID: "u1", Title: "Bullpen plan"}
	embedder.EXPECT().Embed(gomock.Any(), "Throw 30 fastballs.").Return([]float32{1}, nil)
	index.EXPECT().Upsert(gomock.Any(), "u1", gomock.Len(1)).Return(nil)

	n, err := rag.NewIndexer(embedder, index, nil).IndexCoachDoc(context.Background(), doc, "  Throw 30 fastballs.  ")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAssistant_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)
	chat := ragmocks.NewMockChatCompleter(ctrl)
	profiles := repomocks.NewMockProfileRepository(ctrl)
	m := metrics.NewTestManager()

	profiles.EXPECT().GetByUserID(gomock.Any(), "u1").Return(&domain.TrainingProfile{Level: "High school"}, nil)
	embedder.EXPECT().Embed(gomock.Any(), "How is my fastball?").Return([]float32{1, 0}, nil)
	index.EXPECT().Query(gomock.Any(), "u1", []float32{1, 0}, 4).Return([]domain.VectorMatch{
		{ID: "a", Score: 0.9, Metadata: map[string]string{"summary": "Pitching session — 2024-05-04"}},
		{ID: "b", Score: 0.5, Metadata: map[string]string{}},
	}, nil)
	chat.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, user string) (string, error) {
			assert.Contains(t, user, "Level: High school")
			assert.Contains(t, user, "Context #1:\nPitching session — 2024-05-04")
			assert.NotContains(t, user, "Context #2")
			return "Keep it up.", nil
		})

	a := rag.NewAssistant(embedder, index, chat, profiles, 4, m)
	answer, err := a.Ask(context.Background(), "u1", "  How is my fastball?  ")
	require.NoError(t, err)
	assert.Equal(t, "Keep it up.", answer.Answer)
	assert.True(t, answer.UsedProfile)
	assert.Equal(t, 1, answer.ContextCount)
	assert.False(t, answer.Degraded)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterAssistantQueries.WithLabelValues("answered")))
}

func TestAssistant_AskDegradesOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := ragmocks.NewMockEmbedder(ctrl)
	index := repomocks.NewMockVectorRepository(ctrl)
	chat := ragmocks.NewMockChatCompleter(ctrl)
	profiles := repomocks.NewMockProfileRepository(ctrl)

	profiles.EXPECT().GetByUserID(gomock.Any(), "u1").Return(nil, repository.ErrNotFound)
	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	a := rag.NewAssistant(embedder, index, chat, profiles, 0, nil)
	answer, err := a.Ask(context.Background(), "u1", "anything")
	require.NoError(t, err)
	assert.True(t, answer.Degraded)
	assert.Equal(t, rag.Apology, answer.Answer)
	assert.False(t, answer.UsedProfile)
}

func TestAssistant_AskRejectsBlankQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := rag.NewAssistant(
		ragmocks.NewMockEmbedder(ctrl),
		repomocks.NewMockVectorRepository(ctrl),
		ragmocks.NewMockChatCompleter(ctrl),
		repomocks.NewMockProfileRepository(ctrl),
		0, nil,
	)
	_, err := a.Ask(context.Background(), "u1", "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildUserPrompt_NoContext(t *testing.T) {
	p := rag.BuildUserPrompt("No onboarding profile found yet.", nil, "what next?")
	assert.Contains(t, p, "No sessions or goals available.")
	assert.Contains(t, p, `"what next?"`)
}
