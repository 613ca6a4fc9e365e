package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/config"
	"github.com/pageza/openai-cake/backend/internal/metrics"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatMessage is an assistant message as returned by the API
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Refusal string `json:"refusal,omitempty"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// Usage reports token consumption of a completion
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse represents the response from the chat completions API
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *Usage `json:"usage,omitempty"`
}

// LLMService handles interactions with the OpenAI chat completions API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	log    *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, log *zap.Logger) *LLMService {
	return &LLMService{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: endpoint(cfg.OpenAIAPIURL, "/chat/completions"),
		model:  cfg.ChatModel,
		client: &http.Client{Timeout: cfg.OpenAITimeout},
		log:    log.Named("llm"),
	}
}

// GenerateStructured requests a completion constrained to format and returns
// the raw JSON content of the first choice.
func (s *LLMService) GenerateStructured(ctx context.Context, messages []Message, format *ResponseFormat) (string, error) {
	msg, err := s.chat(ctx, ChatRequest{
		Model:          s.model,
		Messages:       messages,
		ResponseFormat: format,
	})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

// Complete sends an unstructured chat completion and returns the assistant message
func (s *LLMService) Complete(ctx context.Context, messages []Message) (*ChatMessage, error) {
	return s.chat(ctx, ChatRequest{
		Model:    s.model,
		Messages: messages,
	})
}

func (s *LLMService) chat(ctx context.Context, req ChatRequest) (*ChatMessage, error) {
	var result ChatResponse
	body, err := postJSON(ctx, s.client, metrics.CallChat, s.apiURL, s.apiKey, req, &result)
	s.log.Debug("chat completion response", zap.ByteString("body", body))
	if err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, errors.New("no response from API")
	}

	msg := result.Choices[0].Message
	if msg.Refusal != "" {
		return nil, fmt.Errorf("model refused the request: %s", msg.Refusal)
	}

	fields := []zap.Field{
		zap.String("model", result.Model),
		zap.String("finish_reason", result.Choices[0].FinishReason),
	}
	if result.Usage != nil {
		fields = append(fields, zap.Int("total_tokens", result.Usage.TotalTokens))
	}
	s.log.Info("chat completion", fields...)

	return &msg, nil
}
