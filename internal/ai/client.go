package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when the Gemini client was never initialized
// (missing API key).
var ErrUnavailable = errors.New("ai client not initialized")

// Client wraps a single Gemini generative model. A nil inner model means the
// API key was not configured; callers get ErrUnavailable and should fall back.
type Client struct {
	gc     *genai.Client
	model  *genai.GenerativeModel
	logger zerolog.Logger
}

// NewClient creates a Gemini-backed client. An empty API key yields a
// non-functional client rather than an error so the server can still boot.
func NewClient(ctx context.Context, apiKey, modelName string, logger zerolog.Logger) (*Client, error) {
	l := logger.With().Str("component", "ai").Logger()
	if apiKey == "" {
		l.Warn().Msg("GEMINI_API_KEY is not set, AI endpoints will serve fallback payloads")
		return &Client{logger: l}, nil
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	return &Client{gc: gc, model: gc.GenerativeModel(modelName), logger: l}, nil
}

// Close releases the underlying API connection. Safe on a fallback-only client.
func (c *Client) Close() error {
	if c.gc == nil {
		return nil
	}
	return c.gc.Close()
}

// Available reports whether the upstream model can be called.
func (c *Client) Available() bool {
	return c.model != nil
}

// Generate sends a single text prompt and returns the concatenated text parts
// of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.model == nil {
		return "", ErrUnavailable
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error().Err(err).Msg("gemini api error")
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out += string(txt)
		}
	}
	if out == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return out, nil
}
