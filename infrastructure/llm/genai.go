// Package llm adapts generative language model APIs to ports.LanguageModel.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// ErrUnavailable is returned by Disabled
var ErrUnavailable = errors.New("language model is not configured")

// GeminiModel generates completions with Google's Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini client. No request is made until Complete.
func NewGeminiModel(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiModel{client: client, model: model}, nil
}

// Complete sends the prompt as a single user turn and returns the text of the reply
// exactly as generated, whitespace and empty replies included
func (m *GeminiModel) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return result.Text(), nil
}

// Name returns the model identifier
func (m *GeminiModel) Name() string {
	return fmt.Sprintf("genai:%s", m.model)
}

// Disabled stands in when no API key is configured; every call fails.
type Disabled struct{}

// Complete implements ports.LanguageModel
func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
