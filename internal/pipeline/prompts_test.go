package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kube-rca/incident-commander/internal/model"
	"github.com/kube-rca/incident-commander/internal/template"
)

func TestDefaultPromptsCoverEveryStage(t *testing.T) {
	prompts, err := DefaultPrompts()
	require.NoError(t, err)

	for _, stage := range Stages() {
		p, ok := prompts[stage]
		require.True(t, ok, "missing %s", stage)
		assert.NotEmpty(t, p.Persona.Role, "stage %s", stage)
		assert.NotEmpty(t, p.Label, "stage %s", stage)
	}
}

func TestParsePromptsRejectsMissingStage(t *testing.T) {
	_, err := ParsePrompts([]byte("stages:\n  triage:\n    template: hi\n"))
	assert.ErrorContains(t, err, "log_analysis")
}

func TestParsePromptsRejectsUnknownVariable(t *testing.T) {
	var b strings.Builder
	b.WriteString("stages:\n")
	for _, stage := range Stages() {
		b.WriteString("  " + string(stage) + ":\n    template: \"{{incident.alert}}\"\n")
	}
	valid := b.String()

	prompts, err := ParsePrompts([]byte(valid))
	require.NoError(t, err)
	assert.Equal(t, "triage", prompts[StageTriage].Label)

	invalid := strings.Replace(valid, "{{incident.alert}}", "{{incident.owner}}", 1)
	_, err = ParsePrompts([]byte(invalid))
	assert.ErrorContains(t, err, "incident.owner")
}

func TestBuildAppendsPreviousOutputs(t *testing.T) {
	prompts, err := DefaultPrompts()
	require.NoError(t, err)

	pc := NewContext()
	require.NoError(t, pc.Put(StageTriage, `{"severity":"P2"}`, model.Record{"severity": "P2"}))

	prompt := prompts.Build(StageLogAnalysis, template.Vars{template.VarLogs: "ERROR boom"}, pc)
	assert.Contains(t, prompt, "ERROR boom")
	assert.Contains(t, prompt, "Triage:\n{\"severity\":\"P2\"}")
	assert.NotContains(t, prompt, "{{")
}
