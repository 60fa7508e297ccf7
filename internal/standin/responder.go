// Package standin provides a deterministic local responder used when the live
// completion backend is unreachable, and as the last-resort source of a
// well-formed record for the response extractor.
//
// 분류 규칙:
//   - 보정(calibration) 프롬프트는 JSON이 아닌 인사말을 반환
//   - 그 외에는 지시문(첫 번째 비어 있지 않은 줄)만 소문자로 정규화해서
//     Rules() 순서대로 평가하고 처음 매칭된 카테고리의 고정 payload를 반환 (first match wins)
//   - 매칭되는 규칙이 없으면 generic payload 반환
//
// 알림 / 로그 / 메트릭 본문과 이전 단계 응답은 지시문 아래 줄에 오므로 분류에 영향을 주지 않는다.
package standin

import (
	"context"
	"strings"
)

// CalibrationPrompt - 백엔드 연결 확인용 고정 프롬프트
const CalibrationPrompt = "Hello"

const greeting = "Hello! I'm the local stand-in responder, ready to help with incident analysis."

// Category - Stand-In 응답 카테고리
type Category string

const (
	CategoryGreeting        Category = "greeting"
	CategoryTriage          Category = "triage"
	CategoryLogAnalysis     Category = "log_analysis"
	CategoryMetricsAnalysis Category = "metrics_analysis"
	CategoryKnowledge       Category = "knowledge_correlation"
	CategoryRootCause       Category = "root_cause"
	CategoryRecommendations Category = "recommendations"
	CategoryReport          Category = "report"
	CategoryGeneric         Category = "generic"
)

// Rule - (카테고리, predicate) 쌍. predicate는 소문자로 정규화된 프롬프트를 받는다.
type Rule struct {
	Category Category
	Keywords []string
}

// Match - 모든 키워드가 프롬프트에 포함되어 있는지 확인
func (r Rule) Match(normalized string) bool {
	for _, keyword := range r.Keywords {
		if !strings.Contains(normalized, keyword) {
			return false
		}
	}
	return true
}

// Rules - 분류 규칙 목록. 선언 순서(단계 순서)가 우선순위다.
func Rules() []Rule {
	return []Rule{
		{Category: CategoryTriage, Keywords: []string{"alert", "triage"}},
		{Category: CategoryLogAnalysis, Keywords: []string{"log", "analysis"}},
		{Category: CategoryMetricsAnalysis, Keywords: []string{"metrics", "analysis"}},
		{Category: CategoryKnowledge, Keywords: []string{"knowledge", "historical"}},
		{Category: CategoryRootCause, Keywords: []string{"root cause", "determine"}},
		{Category: CategoryRecommendations, Keywords: []string{"recommend", "action"}},
		{Category: CategoryReport, Keywords: []string{"post-incident", "report"}},
	}
}

// Responder - 키워드 기반 결정적(deterministic) 응답기
type Responder struct {
	rules    []Rule
	payloads map[Category]string
}

// Responder 객체 생성
func New() *Responder {
	return &Responder{
		rules:    Rules(),
		payloads: cannedPayloads(),
	}
}

// Classify - 프롬프트를 카테고리로 분류
func (r *Responder) Classify(prompt string) Category {
	if strings.TrimSpace(prompt) == CalibrationPrompt {
		return CategoryGreeting
	}

	normalized := strings.ToLower(InstructionLine(prompt))
	for _, rule := range r.rules {
		if rule.Match(normalized) {
			return rule.Category
		}
	}
	return CategoryGeneric
}

// InstructionLine - 분류 대상이 되는 프롬프트의 첫 번째 비어 있지 않은 줄
func InstructionLine(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Invoke - 프롬프트에 해당하는 고정 응답 반환. 실패하지 않는다.
func (r *Responder) Invoke(_ context.Context, prompt string) (string, error) {
	category := r.Classify(prompt)
	if category == CategoryGreeting {
		return greeting, nil
	}
	return r.payloads[category], nil
}

// Payload - 카테고리별 고정 payload 조회
func (r *Responder) Payload(category Category) (string, bool) {
	payload, ok := r.payloads[category]
	return payload, ok
}
