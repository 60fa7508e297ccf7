package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kube-rca/incident-commander/internal/model"
)

func TestContextIsAppendOnly(t *testing.T) {
	pc := NewContext()
	require.NoError(t, pc.Put(StageTriage, `{"severity":"P1"}`, model.Record{"severity": "P1"}))

	err := pc.Put(StageTriage, `{"severity":"P3"}`, model.Record{"severity": "P3"})
	assert.True(t, errors.Is(err, ErrStageWritten))

	entry, ok := pc.Get(StageTriage)
	require.True(t, ok)
	assert.Equal(t, "P1", entry.Record["severity"])
	assert.Equal(t, 1, pc.Len())
}

func TestContextKeepsOrder(t *testing.T) {
	pc := NewContext()
	for _, stage := range Stages()[:3] {
		require.NoError(t, pc.Put(stage, string(stage), model.Record{}))
	}

	entries := pc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, StageTriage, entries[0].Stage)
	assert.Equal(t, StageMetricsAnalysis, entries[2].Stage)

	// 반환된 슬라이스를 수정해도 Context에는 영향 없음
	entries[0].Raw = "changed"
	first, _ := pc.Get(StageTriage)
	assert.Equal(t, string(StageTriage), first.Raw)
}

func TestContextRecordMissingStage(t *testing.T) {
	assert.Empty(t, NewContext().Record(StageRootCause))
}

func TestStageErrorTruncatesRaw(t *testing.T) {
	raw := strings.Repeat("가", 300)
	err := newStageError(StageRootCause, raw, errors.New("unparsable"))

	assert.LessOrEqual(t, len(err.Raw), maxRawLen+len("..."))
	assert.True(t, strings.HasSuffix(err.Raw, "..."))
	assert.True(t, strings.HasPrefix(raw, strings.TrimSuffix(err.Raw, "...")))
	assert.Contains(t, err.Error(), "stage root_cause failed")
}

func TestStagesOrder(t *testing.T) {
	assert.Equal(t, []Stage{
		"triage", "log_analysis", "metrics_analysis", "knowledge_correlation",
		"root_cause", "recommendations", "report",
	}, Stages())
	assert.False(t, Stage("summary").Valid())
}
