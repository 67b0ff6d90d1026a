package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/postprocess"
)

const DefaultOpenRouterModel = "google/gemini-2.0-flash-exp:free"

// OpenRouterService completes prompts against the OpenRouter
// chat-completions API.
type OpenRouterService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenRouterService(apiKey, baseURL, model string) *OpenRouterService {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if model == "" {
		model = DefaultOpenRouterModel
	}
	return &OpenRouterService{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *OpenRouterService) Name() string { return "openrouter" }

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("API key required")}
	}

	body := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	httpReq.Header.Set("X-Title", "Pandulipi")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("API returned status %d", resp.StatusCode)}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("empty response")}
	}

	return postprocess.Clean(parsed.Choices[0].Message.Content), nil
}
