package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kube-rca/incident-commander/internal/fixture"
	"github.com/kube-rca/incident-commander/internal/model"
)

type HistoryRepo interface {
	UpsertPastIncident(ctx context.Context, inc model.HistoricalIncident, vector []float32, embeddingModel string) error
	CountPastIncidents(ctx context.Context) (int, error)
	ListPastIncidents(ctx context.Context, limit int) ([]model.HistoricalIncident, error)
	SimilarPastIncidents(ctx context.Context, vector []float32, embeddingModel string, limit int) ([]model.HistoricalIncident, error)
}

type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

// HistoryService - knowledge correlation 단계용 과거 장애 조회
//
// 조회 순서:
//  1. embedding 유사도 검색 (repo + client 모두 있을 때)
//  2. 최근 과거 장애 목록 (repo만 있을 때, 또는 1단계 결과가 없을 때)
//  3. 내장 fixture
type HistoryService struct {
	repo   HistoryRepo
	client EmbeddingClient
}

// repo, client는 nil이어도 된다.
func NewHistoryService(repo HistoryRepo, client EmbeddingClient) *HistoryService {
	return &HistoryService{repo: repo, client: client}
}

func (s *HistoryService) HistoricalIncidents(ctx context.Context, input model.IncidentInput, limit int) ([]model.HistoricalIncident, error) {
	if s.repo == nil {
		return fixture.History{}.HistoricalIncidents(ctx, input, limit)
	}

	if s.client != nil {
		similar, err := s.similar(ctx, input, limit)
		if err != nil {
			log.Printf("Similar incident search failed, falling back to recent incidents: %v", err)
		} else if len(similar) > 0 {
			return similar, nil
		}
	}

	recent, err := s.repo.ListPastIncidents(ctx, limit)
	if err != nil {
		log.Printf("Failed to list past incidents, using fixtures: %v", err)
		return fixture.History{}.HistoricalIncidents(ctx, input, limit)
	}
	if len(recent) == 0 {
		return fixture.History{}.HistoricalIncidents(ctx, input, limit)
	}
	return recent, nil
}

func (s *HistoryService) similar(ctx context.Context, input model.IncidentInput, limit int) ([]model.HistoricalIncident, error) {
	text := incidentText(input)
	if text == "" {
		return nil, nil
	}
	vector, embeddingModel, err := s.client.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed incident: %w", err)
	}
	return s.repo.SimilarPastIncidents(ctx, vector, embeddingModel, limit)
}

// SeedPastIncidents - past_incidents가 비어 있으면 fixture로 채움 (client가 있으면 embedding 포함)
func (s *HistoryService) SeedPastIncidents(ctx context.Context) (int, error) {
	if s.repo == nil {
		return 0, nil
	}
	count, err := s.repo.CountPastIncidents(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	incidents, err := fixture.PastIncidents()
	if err != nil {
		return 0, err
	}
	for _, inc := range incidents {
		if err := s.IndexPastIncident(ctx, inc); err != nil {
			return 0, err
		}
	}
	log.Printf("Seeded past incidents (count=%d)", len(incidents))
	return len(incidents), nil
}

// IndexPastIncident - 과거 장애 저장 (embedding 실패 시 embedding 없이 저장)
func (s *HistoryService) IndexPastIncident(ctx context.Context, inc model.HistoricalIncident) error {
	if inc.IncidentID == "" {
		return fmt.Errorf("incident_id is required")
	}

	var (
		vector         []float32
		embeddingModel string
	)
	if s.client != nil {
		v, m, err := s.client.EmbedText(ctx, historyText(inc))
		if err != nil {
			log.Printf("Failed to embed past incident (incident_id=%s): %v", inc.IncidentID, err)
		} else {
			vector, embeddingModel = v, m
		}
	}
	return s.repo.UpsertPastIncident(ctx, inc, vector, embeddingModel)
}

func incidentText(input model.IncidentInput) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{input.Alert, input.Logs, input.Metrics} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n")
}

func historyText(inc model.HistoricalIncident) string {
	return strings.Join([]string{inc.Title, inc.Service, inc.RootCause, inc.Resolution, strings.Join(inc.Tags, ", ")}, "\n")
}
