// Package pipeline runs the seven ordered analysis stages and assembles the
// incident report.
//
// 처리 흐름 (단계마다):
//  1. 단계 템플릿 렌더링 + 완료된 단계의 원문 응답을 모두 덧붙여 프롬프트 생성
//  2. Invoker 호출
//  3. Extractor로 구조화 레코드 복원
//  4. Context에 기록
//
// 어느 단계든 호출/추출이 실패하면 즉시 *StageError로 중단한다 (fail-fast).
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kube-rca/incident-commander/internal/extract"
	"github.com/kube-rca/incident-commander/internal/metrics"
	"github.com/kube-rca/incident-commander/internal/model"
	"github.com/kube-rca/incident-commander/internal/template"
)

const (
	defaultHistoryLimit = 5
	noHistoryText       = "No similar incidents on record."
	unknownSeverity     = "Unknown"
)

// Invoker - 프롬프트를 받아 원문 응답을 반환
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Extractor - 원문 응답에서 구조화 레코드 복원
type Extractor interface {
	ExtractLayer(ctx context.Context, raw string) (model.Record, extract.Layer, error)
}

// HistorySource - knowledge correlation 단계에 넣을 과거 장애 이력
type HistorySource interface {
	HistoricalIncidents(ctx context.Context, input model.IncidentInput, limit int) ([]model.HistoricalIncident, error)
}

// Option - Pipeline 선택 설정
type Option func(*Pipeline)

// WithHistory - 과거 장애 이력 소스 지정
func WithHistory(source HistorySource, limit int) Option {
	return func(p *Pipeline) {
		p.history = source
		if limit > 0 {
			p.historyLimit = limit
		}
	}
}

// WithPrompts - 내장 프롬프트 대신 사용할 프롬프트 지정
func WithPrompts(prompts Prompts) Option {
	return func(p *Pipeline) {
		p.prompts = prompts
	}
}

// WithClock - 리포트 id / timestamp 생성용 시계 지정
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

type Pipeline struct {
	invoker      Invoker
	extractor    Extractor
	prompts      Prompts
	history      HistorySource
	historyLimit int
	now          func() time.Time
}

// Pipeline 객체 생성
func New(invoker Invoker, extractor Extractor, opts ...Option) (*Pipeline, error) {
	if invoker == nil {
		return nil, errors.New("invoker is required")
	}
	if extractor == nil {
		extractor = extract.New(nil)
	}

	p := &Pipeline{
		invoker:      invoker,
		extractor:    extractor,
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.prompts == nil {
		prompts, err := DefaultPrompts()
		if err != nil {
			return nil, err
		}
		p.prompts = prompts
	}
	return p, nil
}

// Analyze - 7단계 분석 실행 후 리포트 반환
//
// 실패 시 *StageError만 반환하며 부분 리포트는 없다.
func (p *Pipeline) Analyze(ctx context.Context, input model.IncidentInput) (*model.IncidentReport, error) {
	startedAt := p.now()
	pc := NewContext()
	vars := template.Vars{
		template.VarAlert:   input.Alert,
		template.VarLogs:    input.Logs,
		template.VarMetrics: input.Metrics,
	}

	for _, stage := range Stages() {
		if err := p.runStage(ctx, stage, vars, input, pc); err != nil {
			metrics.StageFailures.WithLabelValues(string(stage)).Inc()
			metrics.Analyses.WithLabelValues("failed").Inc()
			log.Printf("Incident analysis failed (stage=%s): %v", stage, err)
			return nil, err
		}
	}

	report := BuildReport(pc, startedAt)
	metrics.Analyses.WithLabelValues("success").Inc()
	log.Printf("Incident analysis completed (incident_id=%s, severity=%s, elapsed=%s)",
		report.IncidentID, report.Summary.Severity, time.Since(startedAt).Round(time.Millisecond))
	return report, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, vars template.Vars, input model.IncidentInput, pc *Context) error {
	if err := ctx.Err(); err != nil {
		return newStageError(stage, "", err)
	}

	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	}()

	switch stage {
	case StageKnowledge:
		vars[template.VarHistory] = p.historyText(ctx, input)
	case StageRecommendations:
		vars[template.VarTriageSeverity] = triageSeverity(pc)
	}

	prompt := p.prompts.Build(stage, vars, pc)
	raw, err := p.invoker.Invoke(ctx, prompt)
	if err != nil {
		return newStageError(stage, raw, fmt.Errorf("failed to invoke backend: %w", err))
	}

	rec, layer, err := p.extractor.ExtractLayer(ctx, raw)
	if err != nil {
		return newStageError(stage, raw, err)
	}

	if err := pc.Put(stage, raw, rec); err != nil {
		return newStageError(stage, raw, err)
	}

	log.Printf("Stage completed (stage=%s, layer=%s, raw_len=%d)", stage, layer, len(raw))
	return nil
}

// 이력 조회 실패는 분석을 중단하지 않고 빈 이력으로 진행
func (p *Pipeline) historyText(ctx context.Context, input model.IncidentInput) string {
	if p.history == nil {
		return noHistoryText
	}
	incidents, err := p.history.HistoricalIncidents(ctx, input, p.historyLimit)
	if err != nil {
		log.Printf("Failed to load historical incidents: %v", err)
		return noHistoryText
	}
	if len(incidents) == 0 {
		return noHistoryText
	}
	data, err := json.MarshalIndent(incidents, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal historical incidents: %v", err)
		return noHistoryText
	}
	return string(data)
}

func triageSeverity(pc *Context) string {
	var triage model.TriageRecord
	if err := model.DecodeRecord(pc.Record(StageTriage), &triage); err != nil || triage.Severity == "" {
		return unknownSeverity
	}
	return triage.Severity
}
