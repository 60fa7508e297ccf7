// Package template provides stage prompt template rendering.
//
// 지원하는 변수 형식:
//
//	{{incident.alert}}, {{incident.logs}}, {{incident.metrics}}
//	{{history.incidents}}
//	{{triage.severity}}
//
// 전달되지 않은 변수는 빈 문자열로 치환된다.
package template

import (
	"regexp"
	"sort"
	"strings"
)

const (
	VarAlert          = "incident.alert"
	VarLogs           = "incident.logs"
	VarMetrics        = "incident.metrics"
	VarHistory        = "history.incidents"
	VarTriageSeverity = "triage.severity"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_.]+)\}\}`)

// Vars - 변수 이름 -> 치환 값
type Vars map[string]string

// KnownVars - 프롬프트 템플릿에서 사용할 수 있는 변수 목록
func KnownVars() []string {
	return []string{VarAlert, VarLogs, VarMetrics, VarHistory, VarTriageSeverity}
}

// Render - 템플릿의 {{var}}를 실제 값으로 치환
func Render(body string, vars Vars) string {
	pairs := make([]string, 0, len(KnownVars())*2)
	for _, name := range KnownVars() {
		pairs = append(pairs, "{{"+name+"}}", vars[name])
	}

	// --- 추가 변수 ---
	extra := make([]string, 0, len(vars))
	for name := range vars {
		if !isKnown(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		pairs = append(pairs, "{{"+name+"}}", vars[name])
	}

	return strings.NewReplacer(pairs...).Replace(body)
}

// Placeholders - 템플릿에 등장하는 변수 이름 (중복 제거, 등장 순서)
func Placeholders(body string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

func isKnown(name string) bool {
	for _, known := range KnownVars() {
		if known == name {
			return true
		}
	}
	return false
}
