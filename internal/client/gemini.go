package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kube-rca/incident-commander/internal/config"
)

// GeminiClient - Gemini API completion 백엔드
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// GeminiClient 객체 생성
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}, nil
}

// Invoke - 단일 프롬프트 completion
func (c *GeminiClient) Invoke(ctx context.Context, prompt string) (string, error) {
	temperature := c.temperature
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed (model=%s): %w", c.model, err)
	}
	if res == nil {
		return "", fmt.Errorf("empty gemini response")
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}
