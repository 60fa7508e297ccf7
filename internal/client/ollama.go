// Ollama completion 백엔드 클라이언트
//
// 환경변수:
//   - LLM_BASE_URL: Ollama 서버 URL (default: http://localhost:11434)
//   - LLM_MODEL: 모델 이름 (default: llama3)
//   - LLM_TEMPERATURE, LLM_TIMEOUT

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/kube-rca/incident-commander/internal/config"
)

// OllamaClient 구조체 정의
type OllamaClient struct {
	llm         *ollama.LLM
	model       string
	temperature float64
}

// OllamaClient 객체 생성
//
// 연결 확인은 하지 않는다. 도달 가능 여부는 invoker의 보정 호출이 판단한다.
func NewOllamaClient(cfg config.LLMConfig) (*OllamaClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("missing LLM_MODEL")
	}

	llm, err := ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaClient{
		llm:         llm,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Invoke - 단일 프롬프트 completion
func (c *OllamaClient) Invoke(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("ollama generate failed (model=%s): %w", c.model, err)
	}
	return out, nil
}
