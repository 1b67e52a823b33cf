package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/repository"
)

// DefaultTopK is the number of context items retrieved per question.
const DefaultTopK = 6

// Apology is returned instead of an error when a collaborator fails.
const Apology = "Sorry, I couldn't answer that right now. Please try again in a moment."

const systemPrompt = `You are a pitching and strength training assistant for a baseball player.
You are given the player's onboarding profile and summaries of their past sessions, goals and coaching notes.
Prefer numbers from the context when citing velocity, accuracy or weights.
Keep answers specific, practical and conversational.`

// Answer is the assistant's reply to one question.
type Answer struct {
	Answer       string `json:"answer"`
	UsedProfile  bool   `json:"usedProfile"`
	ContextCount int    `json:"contextCount"`
	Degraded     bool   `json:"degraded,omitempty"`
}

// Assistant answers questions grounded in the player's indexed history.
type Assistant struct {
	embedder Embedder
	index    repository.VectorRepository
	chat     ChatCompleter
	profiles repository.ProfileRepository
	topK     int
	metrics  *metrics.Manager
}

func NewAssistant(
	embedder Embedder,
	index repository.VectorRepository,
	chat ChatCompleter,
	profiles repository.ProfileRepository,
	topK int,
	m *metrics.Manager,
) *Assistant {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Assistant{
		embedder: embedder,
		index:    index,
		chat:     chat,
		profiles: profiles,
		topK:     topK,
		metrics:  m,
	}
}

func (a *Assistant) observe(outcome string) {
	if a.metrics != nil {
		a.metrics.CounterAssistantQueries.WithLabelValues(outcome).Inc()
	}
}

// Ask answers question for userID. The only error it returns is a
// domain.ErrValidation for a blank question; collaborator failures yield
// the apology with Degraded set.
func (a *Assistant) Ask(ctx context.Context, userID, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("%w: question is required", domain.ErrValidation)
	}
	logger := log.WithField("userId", userID)

	profile, err := a.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.WithError(err).Warn("Assistant could not load training profile")
		}
		profile = nil
	}
	answer := Answer{UsedProfile: profile != nil}

	degrade := func(stage string, err error) (Answer, error) {
		logger.WithError(err).WithField("stage", stage).Error("Assistant query failed")
		a.observe("degraded")
		answer.Answer = Apology
		answer.Degraded = true
		return answer, nil
	}

	vector, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return degrade("embed", err)
	}

	matches, err := a.index.Query(ctx, userID, vector, a.topK)
	if err != nil {
		return degrade("query", err)
	}

	var chunks []string
	for _, m := range matches {
		if s := strings.TrimSpace(m.Metadata["summary"]); s != "" {
			chunks = append(chunks, s)
		}
	}
	answer.ContextCount = len(chunks)

	text, err := a.chat.Complete(ctx, systemPrompt, BuildUserPrompt(ProfileSummary(profile), chunks, question))
	if err != nil {
		return degrade("chat", err)
	}

	a.observe("answered")
	answer.Answer = text
	return answer, nil
}

// BuildUserPrompt lays out the profile, numbered context items and the question.
func BuildUserPrompt(profileSummary string, chunks []string, question string) string {
	var b strings.Builder
	b.WriteString("Player profile:\n")
	b.WriteString(profileSummary)
	b.WriteString("\n\nTraining history & goals:\n")
	if len(chunks) == 0 {
		b.WriteString("No sessions or goals available.")
	}
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Context #%d:\n%s", i+1, c)
	}
	fmt.Fprintf(&b, "\n\nPlayer's question:\n%q", question)
	return b.String()
}
