package service

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/rag"
	"guardians/training-tracker/internal/repository"
	"guardians/training-tracker/internal/storage"
)

//go:generate mockgen -source=coach_doc_service.go -destination=mocks/coach_doc_service_mocks.go -package=mocks

// MaxCoachDocBytes caps coaching document uploads.
const MaxCoachDocBytes = 2 << 20

type CoachDocService interface {
	// Upload stores a plain-text or markdown document and indexes its chunks
	// for the assistant. Indexing failures leave ChunkCount at 0.
	Upload(ctx context.Context, userID, title, contentType string, body []byte) (*domain.CoachDoc, error)
	List(ctx context.Context, userID string) ([]domain.CoachDoc, error)
}

type coachDocService struct {
	docRepo     repository.CoachDocRepository
	fileStorage storage.FileStorage
	indexer     Indexer
	metrics     *metrics.Manager
}

func NewCoachDocService(
	docRepo repository.CoachDocRepository,
	fileStorage storage.FileStorage,
	indexer Indexer,
	m *metrics.Manager,
) CoachDocService {
	return &coachDocService{
		docRepo:     docRepo,
		fileStorage: fileStorage,
		indexer:     indexer,
		metrics:     m,
	}
}

// textMediaType returns the bare media type of an accepted document, without
// parameters, or "" when contentType is not plain text or markdown.
func textMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if mediaType == "text/plain" || mediaType == "text/markdown" {
		return mediaType
	}
	return ""
}

func (s *coachDocService) Upload(ctx context.Context, userID, title, contentType string, body []byte) (*domain.CoachDoc, error) {
	title = strings.TrimSpace(title)
	mediaType := textMediaType(contentType)
	switch {
	case title == "":
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	case mediaType == "":
		return nil, fmt.Errorf("%w: content type must be text/plain or text/markdown", ErrValidation)
	case len(bytes.TrimSpace(body)) == 0:
		return nil, fmt.Errorf("%w: document is empty", ErrValidation)
	case len(body) > MaxCoachDocBytes:
		return nil, ErrPayloadTooLarge
	case !utf8.Valid(body):
		return nil, fmt.Errorf("%w: document must be UTF-8 text", ErrValidation)
	}

	key := storage.NewCoachDocKey(userID, mediaType)
	if _, err := s.fileStorage.PutObject(ctx, key, bytes.NewReader(body), int64(len(body)), mediaType); err != nil {
		return nil, fmt.Errorf("store coach doc: %w", err)
	}

	doc := &domain.CoachDoc{
		UserID:      userID,
		Title:       title,
		ObjectKey:   key,
		ContentType: mediaType,
		Size:        int64(len(body)),
	}
	id, err := s.docRepo.Create(ctx, doc)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(context.WithoutCancel(ctx), key); delErr != nil {
			log.WithError(delErr).WithField("key", key).Warn("Could not remove orphaned coach doc object")
		}
		return nil, fmt.Errorf("create coach doc: %w", err)
	}
	doc.ID = id
	if s.metrics != nil {
		s.metrics.CounterCoachDocsUploaded.Inc()
	}
	logger := log.WithFields(log.Fields{"userId": userID, "docId": id.Hex()})

	indexCtx := context.WithoutCancel(ctx)
	chunks, indexErr := s.indexer.IndexCoachDoc(indexCtx, doc, string(body))
	rag.LogIndexError(indexErr, log.Fields{"userId": userID, "docId": id.Hex()}, "Coach doc indexing failed")
	if chunks > 0 {
		if err := s.docRepo.SetChunkCount(indexCtx, id, chunks); err != nil {
			logger.WithError(err).Warn("Could not record coach doc chunk count")
		} else {
			doc.ChunkCount = chunks
		}
	}

	logger.WithField("chunks", doc.ChunkCount).Info("Coach doc uploaded")
	return doc, nil
}

func (s *coachDocService) List(ctx context.Context, userID string) ([]domain.CoachDoc, error) {
	return s.docRepo.FindByUser(ctx, userID)
}
