package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_TEMPERATURE", "LLM_TIMEOUT", "HISTORY_LIMIT", "CORS_ALLOWED_ORIGINS", "DATABASE_URL", "PGUSER", "PGDATABASE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.LLM.Provider != ProviderOllama || cfg.LLM.Model != "llama3" {
		t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature != 0.2 || cfg.LLM.Timeout != 120*time.Second {
		t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Postgres.IsConfigured() {
		t.Fatalf("postgres should not be configured by default")
	}
	if cfg.History.Limit != 5 {
		t.Fatalf("history limit = %d", cfg.History.Limit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("LLM_TIMEOUT", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.com ,")
	t.Setenv("PGUSER", "sre")
	t.Setenv("PGDATABASE", "incidents")

	cfg := Load()
	if cfg.LLM.Provider != ProviderGemini {
		t.Fatalf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Fatalf("temperature = %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.LLM.Timeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://example.com" {
		t.Fatalf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
	if !cfg.Postgres.IsConfigured() {
		t.Fatalf("postgres should be configured")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "hot")
	t.Setenv("LLM_TIMEOUT", "-5s")
	t.Setenv("HISTORY_LIMIT", "many")

	cfg := Load()
	if cfg.LLM.Temperature != 0.2 {
		t.Fatalf("temperature = %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.Timeout != 120*time.Second {
		t.Fatalf("timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.History.Limit != 5 {
		t.Fatalf("history limit = %d", cfg.History.Limit)
	}
}

func TestLoadDurationString(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "1m30s")
	cfg := Load()
	if cfg.LLM.Timeout != 90*time.Second {
		t.Fatalf("timeout = %v", cfg.LLM.Timeout)
	}
}

func TestLoadGeminiDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_BASE_URL", "")

	cfg := Load()
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "https://generativelanguage.googleapis.com" {
		t.Fatalf("base url = %q", cfg.LLM.BaseURL)
	}
}
