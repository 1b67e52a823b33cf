package rag

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/progress"
	"guardians/training-tracker/internal/repository"
)

// CoachDocChunkSize is the rune window used to split coaching documents.
const CoachDocChunkSize = 900

// Indexer embeds sessions, goals and coaching documents into the player's
// vector namespace. Callers treat its errors as non-fatal.
type Indexer struct {
	embedder Embedder
	index    repository.VectorRepository
	metrics  *metrics.Manager
}

func NewIndexer(embedder Embedder, index repository.VectorRepository, m *metrics.Manager) *Indexer {
	return &Indexer{embedder: embedder, index: index, metrics: m}
}

func (ix *Indexer) failed(kind string, n int) {
	if ix.metrics != nil && n > 0 {
		ix.metrics.CounterIndexingFailures.WithLabelValues(kind).Add(float64(n))
	}
}

// IndexSession stores the session summary under gym_session:<id> or pitch_session:<id>.
func (ix *Indexer) IndexSession(ctx context.Context, s *domain.Session) error {
	text := SessionSummary(s)
	metadata := map[string]string{
		"type":    "session",
		"kind":    string(s.Discipline),
		"userId":  s.UserID,
		"date":    s.Date.UTC().Format("2006-01-02"),
		"summary": text,
	}
	if s.SessionType != "" {
		metadata["sessionType"] = s.SessionType
	}

	var id string
	switch s.Discipline {
	case domain.DisciplinePitching:
		id = PitchSessionItemID(s)
		metadata["totalPitches"] = strconv.Itoa(s.CountPitches())
	default:
		id = GymSessionItemID(s)
		metadata["timeSpent"] = num(s.TimeSpent)
	}

	vector, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		ix.failed("session", 1)
		return fmt.Errorf("embed session %s: %w", id, err)
	}
	if err := ix.index.Upsert(ctx, s.UserID, []domain.VectorItem{{ID: id, Vector: vector, Metadata: metadata}}); err != nil {
		ix.failed("session", 1)
		return fmt.Errorf("upsert session %s: %w", id, err)
	}
	return nil
}

// IndexGoal embeds every item goal of g. Items that fail to embed are
// skipped; the rest are still written and all errors are combined. Items
// left over from item goals that g no longer has are removed.
func (ix *Indexer) IndexGoal(ctx context.Context, g *domain.Goal) error {
	var (
		items []domain.VectorItem
		ids   []string
		errs  error
	)
	add := func(id, text string, metadata map[string]string) {
		ids = append(ids, id)
		vector, err := ix.embedder.Embed(ctx, text)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("embed %s: %w", id, err))
			return
		}
		metadata["type"] = "goal"
		metadata["kind"] = string(g.Discipline)
		metadata["userId"] = g.UserID
		metadata["goalId"] = g.ID.Hex()
		metadata["scope"] = string(g.Scope)
		metadata["summary"] = text
		items = append(items, domain.VectorItem{ID: id, Vector: vector, Metadata: metadata})
	}

	for _, eg := range g.ExerciseGoals {
		add(ExerciseGoalItemID(g, eg), ExerciseGoalSummary(eg), map[string]string{
			"name": eg.Name,
			"max":  num(eg.Max),
		})
	}
	for _, pg := range g.PitchGoals {
		pt := progress.PitchTypeForGoal(pg)
		add(PitchGoalItemID(g, pt), PitchGoalSummary(pg), map[string]string{
			"name":         pg.Name,
			"pitchType":    string(pt),
			"fastestSpeed": num(pg.FastestSpeed),
			"accuracy":     num(pg.Accuracy),
		})
	}
	ix.failed("goal", len(multierr.Errors(errs)))

	if len(items) > 0 {
		if err := ix.index.Upsert(ctx, g.UserID, items); err != nil {
			ix.failed("goal", len(items))
			return multierr.Append(errs, fmt.Errorf("upsert goal %s: %w", g.ID.Hex(), err))
		}
	}

	removed, err := ix.index.DeleteByPrefix(ctx, g.UserID, GoalItemPrefix(g), ids)
	if err != nil {
		return multierr.Append(errs, fmt.Errorf("prune goal %s: %w", g.ID.Hex(), err))
	}
	if removed > 0 {
		log.WithFields(log.Fields{"goalId": g.ID.Hex(), "removed": removed}).Debug("Pruned stale goal items")
	}
	return errs
}

// IndexCoachDoc chunks text and indexes each chunk. It returns the number
// of chunks written.
func (ix *Indexer) IndexCoachDoc(ctx context.Context, doc *domain.CoachDoc, text string) (int, error) {
	var (
		items []domain.VectorItem
		errs  error
	)
	for i, chunk := range ChunkText(text, CoachDocChunkSize) {
		id := CoachDocItemID(doc, i)
		vector, err := ix.embedder.Embed(ctx, chunk)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("embed %s: %w", id, err))
			continue
		}
		items = append(items, domain.VectorItem{ID: id, Vector: vector, Metadata: map[string]string{
			"type":       "coach_doc",
			"userId":     doc.UserID,
			"docId":      doc.ID.Hex(),
			"title":      doc.Title,
			"chunkIndex": strconv.Itoa(i),
			"summary":    chunk,
		}})
	}
	ix.failed("coach_doc", len(multierr.Errors(errs)))

	if len(items) == 0 {
		return 0, errs
	}
	if err := ix.index.Upsert(ctx, doc.UserID, items); err != nil {
		ix.failed("coach_doc", len(items))
		return 0, multierr.Append(errs, fmt.Errorf("upsert coach doc %s: %w", doc.ID.Hex(), err))
	}
	return len(items), errs
}

// LogIndexError logs each error combined in err at WARN. Indexing errors
// never fail the request that triggered them.
func LogIndexError(err error, fields log.Fields, msg string) {
	if err == nil {
		return
	}
	entry := log.WithFields(fields)
	for _, e := range multierr.Errors(err) {
		entry.WithError(e).Warn(msg)
	}
}
