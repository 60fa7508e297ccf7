package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/kube-rca/incident-commander/internal/model"
)

const pastIncidentColumns = `incident_id, date, title, service, severity, root_cause, resolution, tags`

// EnsureHistorySchema - past_incidents 테이블 생성 (pgvector 확장 필요)
func (db *Postgres) EnsureHistorySchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`
		CREATE TABLE IF NOT EXISTS past_incidents (
			incident_id TEXT PRIMARY KEY,
			date TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			service TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT '',
			root_cause TEXT NOT NULL DEFAULT '',
			resolution TEXT NOT NULL DEFAULT '',
			tags TEXT[] NOT NULL DEFAULT '{}',
			embedding vector,
			embedding_model TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS past_incidents_service_idx ON past_incidents(service)`,
		`CREATE INDEX IF NOT EXISTS past_incidents_date_idx ON past_incidents(date DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to ensure history schema: %w", err)
		}
	}
	return nil
}

func upsertPastIncidentQuery() string {
	return `
		INSERT INTO past_incidents (
			incident_id, date, title, service, severity, root_cause, resolution, tags,
			embedding, embedding_model
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (incident_id) DO UPDATE SET
			date = EXCLUDED.date,
			title = EXCLUDED.title,
			service = EXCLUDED.service,
			severity = EXCLUDED.severity,
			root_cause = EXCLUDED.root_cause,
			resolution = EXCLUDED.resolution,
			tags = EXCLUDED.tags,
			embedding = COALESCE(EXCLUDED.embedding, past_incidents.embedding),
			embedding_model = CASE WHEN EXCLUDED.embedding IS NULL
				THEN past_incidents.embedding_model ELSE EXCLUDED.embedding_model END,
			updated_at = NOW()
	`
}

// UpsertPastIncident - 과거 장애 저장. vector가 비어 있으면 기존 embedding 유지
func (db *Postgres) UpsertPastIncident(ctx context.Context, inc model.HistoricalIncident, vector []float32, embeddingModel string) error {
	var embedding any
	if len(vector) > 0 {
		embedding = pgvector.NewVector(vector)
	}
	tags := inc.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := db.Pool.Exec(ctx, upsertPastIncidentQuery(),
		inc.IncidentID, inc.Date, inc.Title, inc.Service, inc.Severity,
		inc.RootCause, inc.Resolution, tags, embedding, embeddingModel,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert past incident %s: %w", inc.IncidentID, err)
	}
	return nil
}

// CountPastIncidents - 저장된 과거 장애 수
func (db *Postgres) CountPastIncidents(ctx context.Context) (int, error) {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM past_incidents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count past incidents: %w", err)
	}
	return count, nil
}

// ListPastIncidents - 최근 과거 장애 조회
func (db *Postgres) ListPastIncidents(ctx context.Context, limit int) ([]model.HistoricalIncident, error) {
	query := `SELECT ` + pastIncidentColumns + `
		FROM past_incidents
		ORDER BY date DESC
		LIMIT $1`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list past incidents: %w", err)
	}
	return collectPastIncidents(rows, false)
}

// similarPastIncidentsQuery - 같은 embedding 모델 / 차원으로 저장된 행만 비교
//
// embedding 컬럼은 모델마다 차원이 달라 고정 차원을 두지 않는다.
// 차원이 다른 vector끼리 <=> 연산을 하면 에러이므로 WHERE에서 먼저 걸러낸다.
func similarPastIncidentsQuery() string {
	return `SELECT ` + pastIncidentColumns + `, 1 - (embedding <=> $1) AS similarity
		FROM past_incidents
		WHERE embedding IS NOT NULL
			AND embedding_model = $2
			AND vector_dims(embedding) = $3
		ORDER BY embedding <=> $1
		LIMIT $4`
}

// SimilarPastIncidents - embedding cosine 거리 기준 유사 장애 조회
func (db *Postgres) SimilarPastIncidents(ctx context.Context, vector []float32, embeddingModel string, limit int) ([]model.HistoricalIncident, error) {
	if len(vector) == 0 {
		return []model.HistoricalIncident{}, nil
	}
	rows, err := db.Pool.Query(ctx, similarPastIncidentsQuery(), pgvector.NewVector(vector), embeddingModel, len(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar past incidents (embedding_model=%s): %w", embeddingModel, err)
	}
	return collectPastIncidents(rows, true)
}

func collectPastIncidents(rows pgx.Rows, withSimilarity bool) ([]model.HistoricalIncident, error) {
	defer rows.Close()

	list := []model.HistoricalIncident{}
	for rows.Next() {
		var inc model.HistoricalIncident
		dest := []any{
			&inc.IncidentID, &inc.Date, &inc.Title, &inc.Service, &inc.Severity,
			&inc.RootCause, &inc.Resolution, &inc.Tags,
		}
		if withSimilarity {
			dest = append(dest, &inc.Similarity)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan past incident: %w", err)
		}
		list = append(list, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
