package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-critique/internal/config"
	"github.com/fadilmartias/resume-critique/internal/critique"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

func NewGeminiService(ctx context.Context, cfg config.LLMConfig) (*GeminiService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiService{
		Client:      client,
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: cfg.Temperature,
	}, nil
}

func (s *GeminiService) Model() string {
	return s.model
}

// GenerateContent sends the user prompt with systemPrompt as the system instruction
// and joins the text parts of the first candidate.
func (s *GeminiService) GenerateContent(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.model == "" {
		return "", fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(s.temperature),
		MaxOutputTokens:  s.maxTokens,
		ResponseMIMEType: "application/json",
	}
	if strings.TrimSpace(systemPrompt) != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.model, genai.Text(userPrompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %v: %w", err, critique.ErrEmptyOutput)
	}

	var builder strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		builder.WriteString(part.Text)
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("gemini api returned empty response: %w", critique.ErrEmptyOutput)
	}
	return output, nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
