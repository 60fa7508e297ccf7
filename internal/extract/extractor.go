// Package extract recovers a structured record from a raw completion response.
//
// 추출 순서 (처음 성공한 단계에서 종료):
//  1. direct: 응답 전체를 JSON object로 파싱
//  2. fenced: ``` 블록(```json 등 태그 허용)을 순서대로 파싱
//  3. fallback: stand-in에 generic probe 프롬프트를 보내고 그 응답을 파싱
//
// 3단계까지 실패하면 원문을 담은 *ParseError를 반환한다.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/kube-rca/incident-commander/internal/metrics"
	"github.com/kube-rca/incident-commander/internal/model"
	"github.com/kube-rca/incident-commander/internal/standin"
)

// ProbePrompt - fallback 단계에서 stand-in에 보내는 프롬프트 (어떤 분류 규칙에도 매칭되지 않음)
const ProbePrompt = "Summarize the incident in a generic form."

// Layer - 레코드를 복원한 추출 단계
type Layer string

const (
	LayerDirect   Layer = "direct"
	LayerFenced   Layer = "fenced"
	LayerFallback Layer = "fallback"
	layerFailed   Layer = "failed"
)

var (
	fencePattern = regexp.MustCompile("(?s)```[\\w-]*[ \\t]*\\n?(.*?)```")

	errNotObject = errors.New("not a JSON object")
)

// Backend - fallback 응답을 생성하는 백엔드 (기본값: stand-in)
type Backend interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// ParseError - 모든 추출 단계 실패
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to extract structured record: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Extractor struct {
	fallback Backend
}

// Extractor 객체 생성 (fallback이 nil이면 stand-in 사용)
func New(fallback Backend) *Extractor {
	if fallback == nil {
		fallback = standin.New()
	}
	return &Extractor{fallback: fallback}
}

// Extract - raw 응답에서 구조화 레코드 복원
func (e *Extractor) Extract(ctx context.Context, raw string) (model.Record, error) {
	rec, _, err := e.ExtractLayer(ctx, raw)
	return rec, err
}

// ExtractLayer - Extract와 같지만 성공한 단계도 함께 반환
func (e *Extractor) ExtractLayer(ctx context.Context, raw string) (model.Record, Layer, error) {
	if rec, err := parseObject(raw); err == nil {
		metrics.ExtractionLayer.WithLabelValues(string(LayerDirect)).Inc()
		return rec, LayerDirect, nil
	}

	for _, block := range FencedBlocks(raw) {
		if rec, err := parseObject(block); err == nil {
			metrics.ExtractionLayer.WithLabelValues(string(LayerFenced)).Inc()
			return rec, LayerFenced, nil
		}
	}

	out, err := e.fallback.Invoke(ctx, ProbePrompt)
	if err != nil {
		metrics.ExtractionLayer.WithLabelValues(string(layerFailed)).Inc()
		return nil, layerFailed, &ParseError{Raw: raw, Err: fmt.Errorf("fallback invoke failed: %w", err)}
	}
	rec, err := parseObject(out)
	if err != nil {
		metrics.ExtractionLayer.WithLabelValues(string(layerFailed)).Inc()
		return nil, layerFailed, &ParseError{Raw: raw, Err: fmt.Errorf("fallback response unparsable: %w", err)}
	}

	log.Printf("Recovered record from fallback responder (raw_len=%d)", len(raw))
	metrics.ExtractionLayer.WithLabelValues(string(LayerFallback)).Inc()
	return rec, LayerFallback, nil
}

// FencedBlocks - ``` 블록 내부 텍스트를 등장 순서대로 반환
func FencedBlocks(text string) []string {
	matches := fencePattern.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// parseObject - 텍스트 전체가 JSON object인 경우만 허용 (null, 배열, 스칼라 거부)
func parseObject(text string) (model.Record, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}

	var rec model.Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errNotObject
	}
	return rec, nil
}
