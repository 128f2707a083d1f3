// Package gemini provides the text completion client used by the
// resolution pipeline. Downstream stages parse completion output as
// near-structured text, so every request pins the most deterministic
// sampling the API exposes.
package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"placefinder_backend/platform/apperr"
)

// Config for the Gemini completion client.
type Config struct {
	APIKey string
	Model  string
}

// Client issues single-turn completion requests against the Gemini API.
// It carries no business logic and no retry policy; retry decisions belong
// to the caller.
type Client struct {
	config Config
	gen    *genai.Client
}

// NewClient creates a completion client from explicit configuration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	gen, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperr.Upstream("completion client initialization failed", err)
	}

	return &Client{config: cfg, gen: gen}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// Complete sends a (system instruction, user text) pair to the completion
// service and returns the raw response text. Fails with an upstream error
// on transport failure or a malformed response envelope.
func (c *Client) Complete(ctx context.Context, systemInstruction, userText string) (string, error) {
	resp, err := c.gen.Models.GenerateContent(ctx, c.config.Model, genai.Text(userText), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0),
		TopP:              genai.Ptr[float32](1),
		MaxOutputTokens:   2048,
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", apperr.Upstream("completion service request failed", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", apperr.Upstream("completion service returned an empty response", nil)
	}

	return text, nil
}
