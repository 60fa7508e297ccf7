// 환경변수 기반 설정 로드
//
// 환경변수:
//   - PORT (default: 8080)
//   - CORS_ALLOWED_ORIGINS: 쉼표 구분 (default: *)
//   - LLM_PROVIDER: ollama | gemini | standin (default: ollama)
//   - LLM_MODEL (default: llama3, gemini provider: gemini-2.0-flash)
//   - LLM_BASE_URL (default: http://localhost:11434, gemini provider: Gemini API endpoint)
//   - LLM_TEMPERATURE (default: 0.2)
//   - LLM_TIMEOUT (default: 120s)
//   - AI_API_KEY: Gemini API Key (gemini provider, embedding)
//   - EMBEDDING_MODEL (default: text-embedding-004)
//   - HISTORY_LIMIT: knowledge 단계에 전달할 과거 장애 수 (default: 5)
//   - DATABASE_URL / PGHOST / PGPORT / PGUSER / PGPASSWORD / PGDATABASE / PGSSLMODE

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOllama  = "ollama"
	ProviderGemini  = "gemini"
	ProviderStandIn = "standin"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	History   HistoryConfig
	Postgres  PostgresConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type LLMConfig struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	Timeout     time.Duration
}

type EmbeddingConfig struct {
	APIKey string
	Model  string
}

type HistoryConfig struct {
	Limit int
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// Postgres 접속 정보가 설정되어 있는지 체크
func (c PostgresConfig) IsConfigured() bool {
	return c.DatabaseURL != "" || (c.User != "" && c.Database != "")
}

func Load() Config {
	provider := strings.ToLower(getenv("LLM_PROVIDER", ProviderOllama))

	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		},
		LLM: LLMConfig{
			Provider:    provider,
			Model:       getenv("LLM_MODEL", defaultModel(provider)),
			BaseURL:     getenv("LLM_BASE_URL", defaultBaseURL(provider)),
			APIKey:      os.Getenv("AI_API_KEY"),
			Temperature: getenvFloat("LLM_TEMPERATURE", 0.2),
			Timeout:     getenvDuration("LLM_TIMEOUT", 120*time.Second),
		},
		Embedding: EmbeddingConfig{
			APIKey: os.Getenv("AI_API_KEY"),
			Model:  getenv("EMBEDDING_MODEL", "text-embedding-004"),
		},
		History: HistoryConfig{
			Limit: getenvInt("HISTORY_LIMIT", 5),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "llama3"
}

func defaultBaseURL(provider string) string {
	if provider == ProviderGemini {
		return "https://generativelanguage.googleapis.com"
	}
	return "http://localhost:11434"
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, val, fallback)
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		log.Printf("Invalid %s=%q, using default %d", key, val, fallback)
		return fallback
	}
	return parsed
}

// 단위 없는 숫자는 초 단위로 해석 (예: LLM_TIMEOUT=120)
func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	parsed, err := time.ParseDuration(val)
	if err != nil || parsed <= 0 {
		log.Printf("Invalid %s=%q, using default %s", key, val, fallback)
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
