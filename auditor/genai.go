package auditor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmdatafocus/procurement_backend/config"
	"google.golang.org/genai"
)

// GenAIGenerator calls the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("API key not found in environment variables")
	}
	if model == "" {
		model = config.DefaultAuditorModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("GenAI returned no text")
	}
	return text, nil
}

// Name identifies the backing model, e.g. "genai:gemini-2.5-flash".
func (g *GenAIGenerator) Name() string {
	return "genai:" + g.model
}
