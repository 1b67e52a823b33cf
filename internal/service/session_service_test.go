package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/storage"
)

func newTestSessionService(f *fixture) *sessionService {
	svc := NewSessionService(f.sessions, f.files, f.indexer, f.metrics, 0).(*sessionService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestRecordSession_Pitching(t *testing.T) {
	f := newFixture(t)
	svc := newTestSessionService(f)
	id := primitive.NewObjectID()
	date := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	var created domain.Session
	f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *domain.Session) (primitive.ObjectID, error) {
		created = *s
		return id, nil
	})
	f.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0.5}, nil)
	f.vectors.EXPECT().Upsert(gomock.Any(), "u1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, items []domain.VectorItem) error {
		require.Len(t, items, 1)
		assert.Equal(t, "pitch_session:"+id.Hex(), items[0].ID)
		return nil
	})

	session, err := svc.RecordSession(context.Background(), "u1", SessionInput{
		Discipline:  "baseball",
		Date:        &date,
		TimeSpent:   45,
		SessionType: " bullpen ",
		Pitches: map[string]domain.PitchEntry{
			"fb": {Count: 20, Accuracy: 70, MaxSpeed: 84},
			"SL": {Count: 5, Accuracy: 40, MaxSpeed: 75},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, id, session.ID)
	assert.Equal(t, 25, created.TotalPitches)
	assert.Equal(t, "bullpen", created.SessionType)
	assert.Contains(t, created.Pitches, domain.PitchFastball)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterSessionsRecorded.WithLabelValues("pitching")))
}

func TestRecordSession_IndexingFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	svc := newTestSessionService(f)
	date := fixedNow

	f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(primitive.NewObjectID(), nil)
	f.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota"))

	session, err := svc.RecordSession(context.Background(), "u1", SessionInput{
		Discipline: "gym",
		Date:       &date,
		TimeSpent:  60,
		Exercises:  []domain.ExerciseEntry{{Name: "Squat", Sets: 3, Reps: 5, MaxWeight: 225}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisciplineGym, session.Discipline)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterIndexingFailures.WithLabelValues("session")))
}

func TestRecordSession_ValidationErrors(t *testing.T) {
	date := fixedNow
	tests := []struct {
		name string
		in   SessionInput
	}{
		{name: "missing date", in: SessionInput{Discipline: "gym"}},
		{name: "unknown discipline", in: SessionInput{Discipline: "swim", Date: &date}},
		{name: "negative minutes", in: SessionInput{Discipline: "gym", Date: &date, TimeSpent: -1}},
		{name: "unnamed exercise", in: SessionInput{Discipline: "gym", Date: &date, Exercises: []domain.ExerciseEntry{{Sets: 3}}}},
		{name: "unknown pitch code", in: SessionInput{Discipline: "pitching", Date: &date, Pitches: map[string]domain.PitchEntry{"KN": {Count: 3}}}},
		{name: "duplicate pitch code", in: SessionInput{Discipline: "pitching", Date: &date, Pitches: map[string]domain.PitchEntry{"FB": {Count: 3}, "fb": {Count: 2}}}},
		{name: "gym with pitches", in: SessionInput{Discipline: "gym", Date: &date, Pitches: map[string]domain.PitchEntry{"FB": {Count: 3}}}},
		{name: "accuracy above 100", in: SessionInput{Discipline: "pitching", Date: &date, Pitches: map[string]domain.PitchEntry{"CB": {Count: 3, Accuracy: 140}}}},
		{name: "foreign video key", in: SessionInput{Discipline: "gym", Date: &date, Exercises: []domain.ExerciseEntry{{Name: "Squat", VideoKey: "videos/u2/a.mp4"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := newTestSessionService(f)

			_, err := svc.RecordSession(context.Background(), "u1", tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestListSessions_SignsVideoURLs(t *testing.T) {
	f := newFixture(t)
	svc := newTestSessionService(f)

	f.sessions.EXPECT().FindByUser(gomock.Any(), "u1", domain.Discipline("")).Return([]domain.Session{
		{
			ID: primitive.NewObjectID(), UserID: "u1", Discipline: domain.DisciplineGym,
			Exercises: []domain.ExerciseEntry{{Name: "Squat", VideoKey: "videos/u1/a.mp4"}, {Name: "Bench"}},
		},
		{
			ID: primitive.NewObjectID(), UserID: "u1", Discipline: domain.DisciplinePitching,
			Pitches: map[domain.PitchType]domain.PitchEntry{domain.PitchSlider: {Count: 4, VideoKey: "videos/u1/b.mov"}},
		},
	}, nil)
	f.files.EXPECT().GeneratePresignedDownloadURL(gomock.Any(), "videos/u1/a.mp4", storage.DefaultPresignedURLExpiry).
		Return("https://signed/a", nil)
	f.files.EXPECT().GeneratePresignedDownloadURL(gomock.Any(), "videos/u1/b.mov", storage.DefaultPresignedURLExpiry).
		Return("", errors.New("signing failed"))

	sessions, err := svc.ListSessions(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "https://signed/a", sessions[0].Exercises[0].VideoURL)
	assert.Empty(t, sessions[0].Exercises[1].VideoURL)
	assert.Empty(t, sessions[1].Pitches[domain.PitchSlider].VideoURL)
}

func TestUploadVideo(t *testing.T) {
	f := newFixture(t)
	svc := newTestSessionService(f)

	_, err := svc.UploadVideo(context.Background(), "u1", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UploadVideo(context.Background(), "u1", "video/mp4", strings.NewReader("x"), storage.MaxVideoBytes+1)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	f.files.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), int64(4), "video/quicktime").
		DoAndReturn(func(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
			return key, nil
		})
	key, err := svc.UploadVideo(context.Background(), "u1", "video/quicktime", strings.NewReader("mov!"), 4)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "videos/u1/"))
	assert.True(t, strings.HasSuffix(key, ".mov"))
}

func TestVideoUploadURL(t *testing.T) {
	f := newFixture(t)
	svc := newTestSessionService(f)

	f.files.EXPECT().GeneratePresignedUploadURL(gomock.Any(), gomock.Any(), "video/mp4", storage.DefaultPresignedURLExpiry).
		Return("https://signed/put", nil)

	url, key, err := svc.VideoUploadURL(context.Background(), "u1", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://signed/put", url)
	assert.True(t, strings.HasSuffix(key, ".mp4"))
}
