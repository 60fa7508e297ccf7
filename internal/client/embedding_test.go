package client

import (
	"context"
	"testing"

	"github.com/kube-rca/incident-commander/internal/config"
)

func TestEmbeddingModelDefault(t *testing.T) {
	if got := embeddingModel(config.EmbeddingConfig{}); got != defaultEmbeddingModel {
		t.Fatalf("embeddingModel() = %q", got)
	}
	if got := embeddingModel(config.EmbeddingConfig{Model: "gemini-embedding-001"}); got != "gemini-embedding-001" {
		t.Fatalf("embeddingModel() = %q", got)
	}
}

func TestNewEmbeddingClientRequiresAPIKey(t *testing.T) {
	if _, err := NewEmbeddingClient(context.Background(), config.EmbeddingConfig{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
