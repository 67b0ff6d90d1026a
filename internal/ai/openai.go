package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/postprocess"
)

const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIService completes prompts against the OpenAI chat-completions API.
type OpenAIService struct {
	apiKey string
	model  string
	client *openai.Client
}

func NewOpenAIService(apiKey, model string) *OpenAIService {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

func (s *OpenAIService) Name() string { return "openai" }

func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("API key required")}
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("chat completion failed: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("empty response")}
	}

	return postprocess.Clean(resp.Choices[0].Message.Content), nil
}
