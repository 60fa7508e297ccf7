package model

// 리포트 필드 기본값 (모델이 값을 주지 않은 경우 사용)
const (
	DefaultSeverity        = "P1"
	DefaultAffectedService = "unidentified-service"
	DefaultRootCause       = "Root cause under investigation"
	DefaultTitle           = "Service degradation"
)

// IncidentReport - 7단계 분석 결과를 합친 최종 리포트
// 최상위 key 집합은 입력 내용과 관계없이 항상 동일하다.
type IncidentReport struct {
	IncidentID         string                `json:"incident_id"`
	Timestamp          string                `json:"timestamp"`
	Summary            ReportSummary         `json:"summary"`
	Triage             TriageRecord          `json:"triage"`
	Analysis           ReportAnalysis        `json:"analysis"`
	RootCause          RootCauseRecord       `json:"root_cause"`
	Recommendations    RecommendationsRecord `json:"recommendations"`
	PostIncidentReport PostIncidentRecord    `json:"post_incident_report"`
}

// ReportSummary - 리포트 상단 요약
type ReportSummary struct {
	Title            string   `json:"title"`
	Severity         string   `json:"severity"`
	AffectedServices []string `json:"affected_services"`
	RootCause        string   `json:"root_cause"`
}

// ReportAnalysis - 로그 / 메트릭 / 과거 이력 분석 묶음
type ReportAnalysis struct {
	Logs          LogAnalysisRecord `json:"logs"`
	Metrics       MetricsRecord     `json:"metrics"`
	KnowledgeBase KnowledgeRecord   `json:"knowledge_base"`
}
