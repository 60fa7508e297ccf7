package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kube-rca/incident-commander/internal/fixture"
	"github.com/kube-rca/incident-commander/internal/invoker"
	"github.com/kube-rca/incident-commander/internal/model"
)

const apiStatusHealthy = "healthy"

// ErrEmptyIncident - alert / logs / metrics가 모두 비어 있는 요청
var ErrEmptyIncident = errors.New("alert, logs or metrics is required")

type Analyzer interface {
	Analyze(ctx context.Context, input model.IncidentInput) (*model.IncidentReport, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) invoker.Health
}

type IncidentService struct {
	analyzer Analyzer
	health   HealthChecker
	sample   func() (model.SampleIncident, error)
	now      func() time.Time
}

func NewIncidentService(analyzer Analyzer, health HealthChecker) *IncidentService {
	return &IncidentService{
		analyzer: analyzer,
		health:   health,
		sample:   fixture.SampleIncident,
		now:      time.Now,
	}
}

// Analyze - 요청 입력으로 7단계 분석 실행
func (s *IncidentService) Analyze(ctx context.Context, req model.IncidentRequest) (*model.IncidentReport, error) {
	input := req.Input()
	if input.Alert == "" && input.Logs == "" && input.Metrics == "" {
		return nil, ErrEmptyIncident
	}
	return s.analyzer.Analyze(ctx, input)
}

// Sample - 샘플 incident fixture
func (s *IncidentService) Sample() (model.SampleIncident, error) {
	sample, err := s.sample()
	if err != nil {
		return model.SampleIncident{}, fmt.Errorf("failed to load sample data: %w", err)
	}
	return sample, nil
}

// AnalyzeSample - 샘플 incident로 분석 실행
func (s *IncidentService) AnalyzeSample(ctx context.Context) (*model.IncidentReport, error) {
	sample, err := s.Sample()
	if err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(ctx, sample.Input())
}

// Health - API / LLM 상태
func (s *IncidentService) Health(ctx context.Context) model.HealthResponse {
	h := s.health.HealthCheck(ctx)
	return model.HealthResponse{
		APIStatus:            apiStatusHealthy,
		LLMStatus:            h.Status,
		LLMBackend:           string(h.Backend),
		LLMModel:             h.Model,
		LLMEndpoint:          h.Endpoint,
		LLMTemperature:       h.Temperature,
		SampleResponseLength: h.SampleResponseLength,
		Note:                 h.Note,
		Error:                h.Error,
		Timestamp:            s.now().UTC().Format(time.RFC3339),
	}
}
