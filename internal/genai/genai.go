// Package genai wraps the Gemini generative-text API behind a one-method
// interface. Insight prompts and response parsing live in internal/insights;
// this package only knows how to turn a prompt into raw text.
//
// The client is constructed once at startup and shared process-wide. It
// issues independent stateless requests, so concurrent use is safe and no
// teardown is required.
package genai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/pville/moodlog/internal/config"
)

// ErrNotConfigured is returned when no API key was provided at startup.
// Development setups without a key can still run the journal and dashboard
// endpoints; only the insights endpoints fail, with this error as the cause.
var ErrNotConfigured = errors.New("genai: no API key configured")

// TextGenerator is the narrow contract the insights service depends on.
// Keeping it to a single blocking call makes the prompt/parsing strategy
// swappable and the service testable with a canned fake.
type TextGenerator interface {
	// Generate submits a prompt and returns the raw response text.
	// The call is single-shot: no retry, no streaming, no timeout beyond
	// what the context carries.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client implements TextGenerator on top of langchaingo's Gemini binding.
type Client struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// New creates a Gemini-backed client from the given config. Returns a
// client that fails every call with ErrNotConfigured when the API key is
// empty, so callers don't need a nil check.
func New(ctx context.Context, cfg config.GenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return &Client{temperature: cfg.Temperature, maxTokens: cfg.MaxTokens}, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Generate submits the prompt to Gemini and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.model == nil {
		return "", ErrNotConfigured
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generating text: %w", err)
	}

	return out, nil
}
