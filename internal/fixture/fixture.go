// Package fixture serves the embedded sample incident and historical incident
// records.
package fixture

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kube-rca/incident-commander/internal/model"
)

// sampleLogLines - 샘플 incident에 포함할 로그 개수
const sampleLogLines = 3

//go:embed data/*.json
var files embed.FS

func loadRaw(name string) ([]json.RawMessage, error) {
	data, err := files.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}

	// 한 항목이 프롬프트에서 한 줄이 되도록 compact
	for i, item := range items {
		var buf bytes.Buffer
		if err := json.Compact(&buf, item); err != nil {
			return nil, fmt.Errorf("failed to compact fixture %s: %w", name, err)
		}
		items[i] = buf.Bytes()
	}
	return items, nil
}

func Alerts() ([]json.RawMessage, error) {
	return loadRaw("alerts.json")
}

func Logs() ([]json.RawMessage, error) {
	return loadRaw("logs.json")
}

func Metrics() ([]json.RawMessage, error) {
	return loadRaw("metrics.json")
}

// PastIncidents - 과거 장애 이력 전체
func PastIncidents() ([]model.HistoricalIncident, error) {
	data, err := files.ReadFile("data/past_incidents.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture past_incidents.json: %w", err)
	}
	var incidents []model.HistoricalIncident
	if err := json.Unmarshal(data, &incidents); err != nil {
		return nil, fmt.Errorf("failed to parse fixture past_incidents.json: %w", err)
	}
	return incidents, nil
}

// SampleIncident - 첫 번째 alert, 앞쪽 로그 3건, 첫 번째 metrics 묶음
func SampleIncident() (model.SampleIncident, error) {
	alerts, err := Alerts()
	if err != nil {
		return model.SampleIncident{}, err
	}
	logs, err := Logs()
	if err != nil {
		return model.SampleIncident{}, err
	}
	metrics, err := Metrics()
	if err != nil {
		return model.SampleIncident{}, err
	}
	if len(alerts) == 0 || len(metrics) == 0 {
		return model.SampleIncident{}, fmt.Errorf("sample fixtures are empty")
	}
	if len(logs) > sampleLogLines {
		logs = logs[:sampleLogLines]
	}

	return model.SampleIncident{
		Alert:   alerts[0],
		Logs:    logs,
		Metrics: metrics[0],
	}, nil
}

// History - 내장 과거 장애 이력 기반 HistorySource
//
// 서비스 이름 / 태그가 입력에 많이 등장하는 순으로 정렬한다.
type History struct{}

func (History) HistoricalIncidents(_ context.Context, input model.IncidentInput, limit int) ([]model.HistoricalIncident, error) {
	incidents, err := PastIncidents()
	if err != nil {
		return nil, err
	}
	return Rank(incidents, input, limit), nil
}

// Rank - 입력과 겹치는 키워드 수로 정렬 (동점이면 원래 순서 유지)
func Rank(incidents []model.HistoricalIncident, input model.IncidentInput, limit int) []model.HistoricalIncident {
	text := strings.ToLower(input.Alert + "\n" + input.Logs + "\n" + input.Metrics)

	scores := make([]int, len(incidents))
	for i, inc := range incidents {
		scores[i] = overlap(text, inc)
	}

	ranked := make([]int, len(incidents))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]model.HistoricalIncident, 0, limit)
	for _, i := range ranked[:limit] {
		out = append(out, incidents[i])
	}
	return out
}

func overlap(text string, inc model.HistoricalIncident) int {
	score := 0
	if inc.Service != "" && strings.Contains(text, strings.ToLower(inc.Service)) {
		score += 2
	}
	for _, tag := range inc.Tags {
		if strings.Contains(text, strings.ToLower(tag)) {
			score++
		}
	}
	return score
}
