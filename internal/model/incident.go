package model

import (
	"encoding/json"
	"strings"
)

// IncidentInput - 분석 대상 Incident 원시 신호 (알림 / 로그 / 메트릭)
type IncidentInput struct {
	Alert   string `json:"alert"`
	Logs    string `json:"logs"`
	Metrics string `json:"metrics"`
}

// IncidentRequest - POST /analyze-incident 요청 구조체
type IncidentRequest struct {
	Alert   string `json:"alert"`
	Logs    string `json:"logs"`
	Metrics string `json:"metrics"`
}

// Input - 요청을 파이프라인 입력으로 변환 (앞뒤 공백 제거)
func (r IncidentRequest) Input() IncidentInput {
	return IncidentInput{
		Alert:   strings.TrimSpace(r.Alert),
		Logs:    strings.TrimSpace(r.Logs),
		Metrics: strings.TrimSpace(r.Metrics),
	}
}

// IncidentResponse - 분석 결과 응답 구조체
// 실패 시 Status는 "failed"이고 Stage/Error에 실패한 단계와 원인이 담긴다.
type IncidentResponse struct {
	Status     string          `json:"status"`
	IncidentID string          `json:"incident_id,omitempty"`
	Analysis   *IncidentReport `json:"analysis,omitempty"`
	Stage      string          `json:"stage,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// SampleIncident - 샘플 fixture 원본 데이터
type SampleIncident struct {
	Alert   json.RawMessage   `json:"alert" swaggertype:"object"`
	Logs    []json.RawMessage `json:"logs" swaggertype:"array,object"`
	Metrics json.RawMessage   `json:"metrics" swaggertype:"object"`
}

// Input - fixture를 프롬프트에 그대로 넣을 수 있는 텍스트 입력으로 변환
func (s SampleIncident) Input() IncidentInput {
	logs := make([]string, 0, len(s.Logs))
	for _, entry := range s.Logs {
		logs = append(logs, string(entry))
	}
	return IncidentInput{
		Alert:   string(s.Alert),
		Logs:    strings.Join(logs, "\n"),
		Metrics: string(s.Metrics),
	}
}

// HistoricalIncident - 과거 장애 이력 (knowledge correlation 단계 입력)
type HistoricalIncident struct {
	IncidentID string   `json:"incident_id"`
	Date       string   `json:"date"`
	Title      string   `json:"title"`
	Service    string   `json:"service"`
	Severity   string   `json:"severity"`
	RootCause  string   `json:"root_cause"`
	Resolution string   `json:"resolution"`
	Tags       []string `json:"tags,omitempty"`
	Similarity float64  `json:"similarity,omitempty"`
}
