package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers. The interview flows only need
// one call shape: a single user turn of ordered text and inline image parts
// producing a text completion.
type Client interface {
	// GenerateParts sends one user-role message composed of the given parts
	// and returns the text of the first candidate.
	GenerateParts(ctx context.Context, tier ModelTier, parts ...genai.Part) (string, error)
	// GenerateText is a convenience wrapper for a single text part.
	GenerateText(ctx context.Context, tier ModelTier, prompt string) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateParts sends one user-role message and returns the completion text.
func (c *GeminiClient) GenerateParts(ctx context.Context, tier ModelTier, parts ...genai.Part) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classifyProviderError(err)
	}

	return extractTextFromResponse(resp)
}

// GenerateText generates a completion from a single text prompt.
func (c *GeminiClient) GenerateText(ctx context.Context, tier ModelTier, prompt string) (string, error) {
	return c.GenerateParts(ctx, tier, genai.Text(prompt))
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ProviderError{Err: fmt.Errorf("no candidates in response")}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ProviderError{Err: fmt.Errorf("no content in response")}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &ProviderError{Err: fmt.Errorf("no text parts in response")}
	}

	return strings.Join(parts, ""), nil
}
