package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/postprocess"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiService completes prompts against the Gemini API.
type GeminiService struct {
	apiKey string
	model  string
}

func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiService{apiKey: apiKey, model: model}
}

func (s *GeminiService) Name() string { return "gemini" }

func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("API key required")}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("failed to create client: %w", err)}
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("generate content failed: %w", err)}
	}

	text := resp.Text()
	if text == "" {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("empty response")}
	}
	return postprocess.Clean(text), nil
}
