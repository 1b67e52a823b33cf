package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"guardians/training-tracker/internal/domain"
)

func TestCoachDocUpload(t *testing.T) {
	f := newFixture(t)
	svc := NewCoachDocService(f.docs, f.files, f.indexer, f.metrics)
	id := primitive.NewObjectID()
	body := []byte("# Long toss\nWork out to 180 feet twice a week.\n")

	f.files.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), int64(len(body)), "text/markdown").Return("key", nil)
	f.docs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(id, nil)
	f.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 1}, nil)
	f.vectors.EXPECT().Upsert(gomock.Any(), "u1", gomock.Len(1)).Return(nil)
	f.docs.EXPECT().SetChunkCount(gomock.Any(), id, 1).Return(nil)

	doc, err := svc.Upload(context.Background(), "u1", " Long toss ", "text/markdown; charset=utf-8", body)
	require.NoError(t, err)
	assert.Equal(t, "Long toss", doc.Title)
	assert.Equal(t, "text/markdown", doc.ContentType)
	assert.Equal(t, 1, doc.ChunkCount)
	assert.True(t, strings.HasPrefix(doc.ObjectKey, "coach-docs/u1/"))
	assert.True(t, strings.HasSuffix(doc.ObjectKey, ".md"))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterCoachDocsUploaded))
}

func TestCoachDocUpload_IndexingFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	svc := NewCoachDocService(f.docs, f.files, f.indexer, f.metrics)

	f.files.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "text/plain").Return("key", nil)
	f.docs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(primitive.NewObjectID(), nil)
	f.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))

	doc, err := svc.Upload(context.Background(), "u1", "Notes", "text/plain", []byte("Stay closed with the front shoulder."))
	require.NoError(t, err)
	assert.Zero(t, doc.ChunkCount)
}

func TestCoachDocUpload_CreateFailureRemovesObject(t *testing.T) {
	f := newFixture(t)
	svc := NewCoachDocService(f.docs, f.files, f.indexer, f.metrics)

	var storedKey string
	f.files.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "text/plain").
		DoAndReturn(func(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
			storedKey = key
			return key, nil
		})
	f.docs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(primitive.NilObjectID, errors.New("write conflict"))
	f.files.EXPECT().DeleteObject(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string) error {
		assert.Equal(t, storedKey, key)
		return nil
	})

	_, err := svc.Upload(context.Background(), "u1", "Notes", "text/plain", []byte("Drive through the glove side."))
	require.Error(t, err)
	assert.Zero(t, testutil.ToFloat64(f.metrics.CounterCoachDocsUploaded))
}

func TestCoachDocUpload_Validation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		contentType string
		body        []byte
	}{
		{name: "missing title", contentType: "text/plain", body: []byte("x")},
		{name: "binary type", title: "t", contentType: "application/pdf", body: []byte("x")},
		{name: "empty body", title: "t", contentType: "text/plain", body: []byte("  \n")},
		{name: "invalid utf8", title: "t", contentType: "text/plain", body: []byte{0xff, 0xfe, 0x41}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewCoachDocService(f.docs, f.files, f.indexer, f.metrics)

			_, err := svc.Upload(context.Background(), "u1", tt.title, tt.contentType, tt.body)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCoachDocList(t *testing.T) {
	f := newFixture(t)
	svc := NewCoachDocService(f.docs, f.files, f.indexer, f.metrics)

	f.docs.EXPECT().FindByUser(gomock.Any(), "u1").Return([]domain.CoachDoc{{Title: "Long toss"}}, nil)
	docs, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
