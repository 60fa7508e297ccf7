package pipeline

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kube-rca/incident-commander/internal/template"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

// Persona - 단계별 분석 역할
type Persona struct {
	Role string `yaml:"role"`
	Goal string `yaml:"goal"`
}

// StagePrompt - 단계별 프롬프트 템플릿
type StagePrompt struct {
	Label    string  `yaml:"label"`
	Persona  Persona `yaml:"persona"`
	Template string  `yaml:"template"`
}

// Prompts - 단계 이름 -> 프롬프트
type Prompts map[Stage]StagePrompt

type promptFile struct {
	Stages map[Stage]StagePrompt `yaml:"stages"`
}

// DefaultPrompts - 내장 prompts.yaml 로드
func DefaultPrompts() (Prompts, error) {
	return ParsePrompts(defaultPromptsYAML)
}

// ParsePrompts - YAML 프롬프트 정의 파싱 및 검증
//
// 7개 단계가 모두 있어야 하며, 템플릿은 template.KnownVars()의 변수만 사용할 수 있다.
func ParsePrompts(data []byte) (Prompts, error) {
	var file promptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}

	prompts := Prompts(file.Stages)
	for _, stage := range Stages() {
		p, ok := prompts[stage]
		if !ok {
			return nil, fmt.Errorf("prompt for stage %s is missing", stage)
		}
		if strings.TrimSpace(p.Template) == "" {
			return nil, fmt.Errorf("prompt template for stage %s is empty", stage)
		}
		for _, name := range template.Placeholders(p.Template) {
			if !isKnownVar(name) {
				return nil, fmt.Errorf("prompt for stage %s uses unknown variable %q", stage, name)
			}
		}
		if p.Label == "" {
			p.Label = string(stage)
			prompts[stage] = p
		}
	}
	for stage := range prompts {
		if !stage.Valid() {
			return nil, fmt.Errorf("prompt defined for unknown stage %q", stage)
		}
	}
	return prompts, nil
}

// Build - 단계 프롬프트 생성
//
// persona + 템플릿 렌더링 결과 + 완료된 모든 단계의 원문 응답 (단계 순서대로)
func (p Prompts) Build(stage Stage, vars template.Vars, pc *Context) string {
	sp := p[stage]

	var b strings.Builder
	if sp.Persona.Role != "" {
		fmt.Fprintf(&b, "You are the %s.", sp.Persona.Role)
		if sp.Persona.Goal != "" {
			fmt.Fprintf(&b, " Your goal: %s.", sp.Persona.Goal)
		}
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimSpace(template.Render(sp.Template, vars)))

	entries := pc.Entries()
	if len(entries) > 0 {
		b.WriteString("\n\nPrevious stage outputs:\n")
		for _, entry := range entries {
			fmt.Fprintf(&b, "\n%s:\n%s\n", p.label(entry.Stage), entry.Raw)
		}
	}
	return b.String()
}

func (p Prompts) label(stage Stage) string {
	if sp, ok := p[stage]; ok && sp.Label != "" {
		return sp.Label
	}
	return string(stage)
}

func isKnownVar(name string) bool {
	for _, known := range template.KnownVars() {
		if known == name {
			return true
		}
	}
	return false
}
