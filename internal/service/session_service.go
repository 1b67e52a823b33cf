package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/rag"
	"guardians/training-tracker/internal/repository"
	"guardians/training-tracker/internal/storage"
)

//go:generate mockgen -source=session_service.go -destination=mocks/session_service_mocks.go -package=mocks

// SessionInput is a session form as submitted. Pitch codes are raw strings.
type SessionInput struct {
	Discipline  string
	Date        *time.Time
	TimeSpent   float64
	SessionType string
	Exercises   []domain.ExerciseEntry
	Pitches     map[string]domain.PitchEntry
}

type SessionService interface {
	RecordSession(ctx context.Context, userID string, in SessionInput) (*domain.Session, error)
	// ListSessions returns sessions oldest first with video keys expanded to
	// signed download URLs.
	ListSessions(ctx context.Context, userID, discipline string) ([]domain.Session, error)
	// UploadVideo stores a video body and returns its object key.
	UploadVideo(ctx context.Context, userID, contentType string, body io.Reader, size int64) (string, error)
	// VideoUploadURL returns a presigned PUT URL and the key it writes to.
	VideoUploadURL(ctx context.Context, userID, contentType string) (url, key string, err error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	fileStorage storage.FileStorage
	indexer     Indexer
	metrics     *metrics.Manager
	urlExpiry   time.Duration
	now         func() time.Time
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	fileStorage storage.FileStorage,
	indexer Indexer,
	m *metrics.Manager,
	urlExpiry time.Duration,
) SessionService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &sessionService{
		sessionRepo: sessionRepo,
		fileStorage: fileStorage,
		indexer:     indexer,
		metrics:     m,
		urlExpiry:   urlExpiry,
		now:         time.Now,
	}
}

func (s *sessionService) RecordSession(ctx context.Context, userID string, in SessionInput) (*domain.Session, error) {
	discipline, err := domain.ParseDiscipline(in.Discipline)
	if err != nil {
		return nil, err
	}
	if in.Date == nil || in.Date.IsZero() {
		return nil, fmt.Errorf("%w: session date is required", ErrValidation)
	}

	session := &domain.Session{
		UserID:      userID,
		Discipline:  discipline,
		Date:        in.Date.UTC(),
		TimeSpent:   in.TimeSpent,
		SessionType: strings.TrimSpace(in.SessionType),
		CreatedAt:   s.now().UTC(),
	}
	switch discipline {
	case domain.DisciplineGym:
		for _, ex := range in.Exercises {
			ex.Name = strings.TrimSpace(ex.Name)
			session.Exercises = append(session.Exercises, ex)
		}
		if len(in.Pitches) > 0 {
			return nil, fmt.Errorf("%w: gym sessions cannot carry pitches", ErrValidation)
		}
	case domain.DisciplinePitching:
		if len(in.Exercises) > 0 {
			return nil, fmt.Errorf("%w: pitching sessions cannot carry exercises", ErrValidation)
		}
		session.Pitches = make(map[domain.PitchType]domain.PitchEntry, len(in.Pitches))
		for raw, entry := range in.Pitches {
			code, ok := domain.ParsePitchType(raw)
			if !ok {
				return nil, fmt.Errorf("%w: unknown pitch type %q", ErrValidation, raw)
			}
			if _, dup := session.Pitches[code]; dup {
				return nil, fmt.Errorf("%w: pitch type %s given twice", ErrValidation, code)
			}
			session.Pitches[code] = entry
		}
		session.TotalPitches = session.CountPitches()
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	for _, key := range session.VideoKeys() {
		if !storage.OwnsVideoKey(userID, key) {
			return nil, fmt.Errorf("%w: video %q does not belong to this player", ErrValidation, key)
		}
	}

	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.ID = id

	if s.metrics != nil {
		s.metrics.CounterSessionsRecorded.WithLabelValues(string(discipline)).Inc()
	}
	log.WithFields(log.Fields{"userId": userID, "sessionId": id.Hex(), "discipline": discipline}).Info("Session recorded")

	indexErr := s.indexer.IndexSession(context.WithoutCancel(ctx), session)
	rag.LogIndexError(indexErr, log.Fields{"userId": userID, "sessionId": id.Hex()}, "Session indexing failed")

	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID, discipline string) ([]domain.Session, error) {
	var d domain.Discipline
	if strings.TrimSpace(discipline) != "" {
		parsed, err := domain.ParseDiscipline(discipline)
		if err != nil {
			return nil, err
		}
		d = parsed
	}

	sessions, err := s.sessionRepo.FindByUser(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		s.signVideos(ctx, &sessions[i])
	}
	return sessions, nil
}

// signVideos fills VideoURL for every entry with a VideoKey. A failed
// signature leaves the URL empty.
func (s *sessionService) signVideos(ctx context.Context, session *domain.Session) {
	sign := func(key string) string {
		if key == "" {
			return ""
		}
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"sessionId": session.ID.Hex(), "key": key}).Warn("Could not sign video URL")
			return ""
		}
		return url
	}
	for i := range session.Exercises {
		session.Exercises[i].VideoURL = sign(session.Exercises[i].VideoKey)
	}
	for pt, entry := range session.Pitches {
		if entry.VideoKey == "" {
			continue
		}
		entry.VideoURL = sign(entry.VideoKey)
		session.Pitches[pt] = entry
	}
}

func (s *sessionService) UploadVideo(ctx context.Context, userID, contentType string, body io.Reader, size int64) (string, error) {
	if !storage.IsVideo(contentType) {
		return "", fmt.Errorf("%w: content type must be video/*", ErrValidation)
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: empty video body", ErrValidation)
	}
	if size > storage.MaxVideoBytes {
		return "", ErrPayloadTooLarge
	}

	key := storage.NewVideoKey(userID, contentType)
	stored, err := s.fileStorage.PutObject(ctx, key, body, size, contentType)
	if err != nil {
		return "", fmt.Errorf("store video: %w", err)
	}
	log.WithFields(log.Fields{"userId": userID, "key": stored, "size": size}).Info("Video stored")
	return stored, nil
}

func (s *sessionService) VideoUploadURL(ctx context.Context, userID, contentType string) (string, string, error) {
	if !storage.IsVideo(contentType) {
		return "", "", fmt.Errorf("%w: content type must be video/*", ErrValidation)
	}
	key := storage.NewVideoKey(userID, contentType)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, s.urlExpiry)
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return url, key, nil
}
