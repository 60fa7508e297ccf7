package pipeline

import (
	"errors"
	"fmt"

	"github.com/kube-rca/incident-commander/internal/model"
)

// Stage - 분석 파이프라인 단계
type Stage string

const (
	StageTriage          Stage = "triage"
	StageLogAnalysis     Stage = "log_analysis"
	StageMetricsAnalysis Stage = "metrics_analysis"
	StageKnowledge       Stage = "knowledge_correlation"
	StageRootCause       Stage = "root_cause"
	StageRecommendations Stage = "recommendations"
	StageReport          Stage = "report"
)

// Stages - 실행 순서대로 정렬된 단계 목록 (분기/생략 없음)
func Stages() []Stage {
	return []Stage{
		StageTriage,
		StageLogAnalysis,
		StageMetricsAnalysis,
		StageKnowledge,
		StageRootCause,
		StageRecommendations,
		StageReport,
	}
}

func (s Stage) Valid() bool {
	for _, stage := range Stages() {
		if stage == s {
			return true
		}
	}
	return false
}

// ErrStageWritten - 이미 기록된 단계를 다시 쓰려는 경우
var ErrStageWritten = errors.New("stage already written")

// Entry - 완료된 단계의 원문 응답과 복원된 레코드
type Entry struct {
	Stage  Stage
	Raw    string
	Record model.Record
}

// Context - 단일 분석 동안 누적되는 단계 결과 (append-only)
//
// Analyze 호출마다 새로 만들며 여러 분석 사이에서 공유하지 않는다.
type Context struct {
	entries []Entry
	index   map[Stage]int
}

func NewContext() *Context {
	return &Context{index: make(map[Stage]int)}
}

// Put - 단계 결과 기록. 한 번 기록된 단계는 덮어쓸 수 없다.
func (c *Context) Put(stage Stage, raw string, rec model.Record) error {
	if _, ok := c.index[stage]; ok {
		return fmt.Errorf("%w: %s", ErrStageWritten, stage)
	}
	c.index[stage] = len(c.entries)
	c.entries = append(c.entries, Entry{Stage: stage, Raw: raw, Record: rec})
	return nil
}

// Get - 단계 결과 조회
func (c *Context) Get(stage Stage) (Entry, bool) {
	i, ok := c.index[stage]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Record - 단계 레코드 조회 (없으면 빈 레코드)
func (c *Context) Record(stage Stage) model.Record {
	if entry, ok := c.Get(stage); ok && entry.Record != nil {
		return entry.Record
	}
	return model.Record{}
}

// Entries - 기록 순서대로 완료된 단계 목록 (복사본)
func (c *Context) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Context) Len() int {
	return len(c.entries)
}
