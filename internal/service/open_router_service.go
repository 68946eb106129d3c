package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-critique/internal/config"
	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, OpenRouter, self-hosted gateways).
type OpenRouterService struct {
	client      *resty.Client
	model       string
	maxTokens   int
	temperature float32
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

func NewOpenRouterService(cfg config.LLMConfig) (*OpenRouterService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api key for provider %q is not set", cfg.Provider)
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &OpenRouterService{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (s *OpenRouterService) Model() string {
	return s.model
}

// GenerateContent sends one system and one user message and returns the first choice.
func (s *OpenRouterService) GenerateContent(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", errors.New("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       s.model,
			Temperature: s.temperature,
			MaxTokens:   s.maxTokens,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userPrompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if resp.IsError() {
		return "", &APIError{
			StatusCode: resp.StatusCode(),
			Message:    gjson.Get(resp.String(), "error.message").String(),
		}
	}

	content := gjson.Get(resp.String(), "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("chat completion returned no choices: %w", critique.ErrEmptyOutput)
	}
	text := strings.TrimSpace(content.String())
	if text == "" {
		return "", fmt.Errorf("chat completion returned empty content: %w", critique.ErrEmptyOutput)
	}
	return text, nil
}
