// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gemini produces short article summaries with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashwire/minefeed/internal/article"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

const systemPrompt = `You summarize news articles for short social media posts.
Respond with a single plain-text sentence of at most 160 characters.
No hashtags, no quotes, no emoji, no leading labels.`

// Config configures a Summarizer.
type Config struct {
	// APIKey is the Gemini API key.
	APIKey string
	// Model is the model name. Defaults to gemini-1.5-flash.
	Model string
	// Logger is an optional logger.
	Logger *slog.Logger
}

// Summarizer generates one-sentence article summaries.
type Summarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	slog   *slog.Logger
}

// New returns a Summarizer configured per cfg.
func New(ctx context.Context, cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = defaultModel
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(0.2)
	model.SetMaxOutputTokens(96)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	s := &Summarizer{
		client: client,
		model:  model,
		slog:   cfg.Logger,
	}
	if s.slog == nil {
		s.slog = slog.Default()
	}
	return s, nil
}

// Summarize returns a one-sentence summary of a. Callers should fall back to
// an excerpt of the article body when Summarize fails.
func (s *Summarizer) Summarize(ctx context.Context, a article.Article) (string, error) {
	var sb strings.Builder
	sb.WriteString("Title: ")
	sb.WriteString(a.Title)
	if a.Body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(a.Body)
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	text := extractText(resp)
	if text == "" {
		return "", errors.New("model returned no text")
	}
	s.slog.Debug("generated summary", "uri", a.URI, "length", len(text))
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// Close releases resources held by the underlying client.
func (s *Summarizer) Close() error {
	return s.client.Close()
}
