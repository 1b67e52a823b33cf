package rag

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

//go:generate mockgen -source=chat.go -destination=mocks/chat_mocks.go -package=mocks

// ChatCompleter answers a prompt.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GenAIChat completes prompts with a Gemini model.
type GenAIChat struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGenAIChat(client *genai.Client, model string, temperature float32) *GenAIChat {
	return &GenAIChat{client: client, model: model, temperature: temperature}
}

func (c *GenAIChat) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), config)
	if err != nil {
		return "", classify("chat", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("chat: %w: empty completion", ErrUnavailable)
	}
	return text, nil
}

// DisabledEmbedder and DisabledChat stand in when no API key is configured,
// so indexing is skipped and the assistant degrades to its apology.
type DisabledEmbedder struct{}

func (DisabledEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrDisabled
}

type DisabledChat struct{}

func (DisabledChat) Complete(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}
