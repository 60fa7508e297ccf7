package db

import (
	"strings"
	"testing"

	"github.com/kube-rca/incident-commander/internal/config"
)

func TestBuildPostgresURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.PostgresConfig
		want    string
		wantErr bool
	}{
		{
			name: "database url wins",
			cfg:  config.PostgresConfig{DatabaseURL: "postgres://a@b/c", User: "x", Database: "y"},
			want: "postgres://a@b/c",
		},
		{
			name: "defaults",
			cfg:  config.PostgresConfig{User: "sre", Database: "incidents"},
			want: "postgres://sre@localhost:5432/incidents?sslmode=disable",
		},
		{
			name: "with password",
			cfg:  config.PostgresConfig{Host: "db", Port: "6543", User: "sre", Password: "p@ss", Database: "incidents", SSLMode: "require"},
			want: "postgres://sre:p%40ss@db:6543/incidents?sslmode=require",
		},
		{
			name:    "missing user",
			cfg:     config.PostgresConfig{Database: "incidents"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildPostgresURL(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildPostgresURL() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("buildPostgresURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimilarPastIncidentsQueryFiltersEmbeddingSpace(t *testing.T) {
	query := similarPastIncidentsQuery()
	for _, want := range []string{"embedding_model = $2", "vector_dims(embedding) = $3", "LIMIT $4"} {
		if !strings.Contains(query, want) {
			t.Fatalf("query missing %q:\n%s", want, query)
		}
	}
}
