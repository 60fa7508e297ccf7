package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/kube-rca/incident-commander/internal/model"
)

const incidentIDLayout = "20060102-150405"

// BuildReport - 단계별 레코드를 고정 스키마 리포트로 변환
//
// 모델이 값을 주지 않은 필드는 model.Default* 값으로 채운다.
// id와 timestamp는 분석 시작 시각에서 만든다 (초 단위라 충돌 가능).
func BuildReport(pc *Context, at time.Time) *model.IncidentReport {
	var (
		triage          model.TriageRecord
		logs            model.LogAnalysisRecord
		metricsRec      model.MetricsRecord
		knowledge       model.KnowledgeRecord
		rootCause       model.RootCauseRecord
		recommendations model.RecommendationsRecord
		postIncident    model.PostIncidentRecord
	)

	decode(pc, StageTriage, &triage)
	decode(pc, StageLogAnalysis, &logs)
	decode(pc, StageMetricsAnalysis, &metricsRec)
	decode(pc, StageKnowledge, &knowledge)
	decode(pc, StageRootCause, &rootCause)
	decode(pc, StageRecommendations, &recommendations)
	decode(pc, StageReport, &postIncident)

	severity := triage.Severity
	if severity == "" {
		severity = model.DefaultSeverity
	}
	services := triage.AffectedServices
	if len(services) == 0 {
		services = []string{model.DefaultAffectedService}
	}
	cause := rootCause.PrimaryCause
	if cause == "" {
		cause = model.DefaultRootCause
	}

	return &model.IncidentReport{
		IncidentID: "INC-" + at.Format(incidentIDLayout),
		Timestamp:  at.Format(time.RFC3339),
		Summary: model.ReportSummary{
			Title:            reportTitle(services, severity),
			Severity:         severity,
			AffectedServices: services,
			RootCause:        cause,
		},
		Triage: triage,
		Analysis: model.ReportAnalysis{
			Logs:          logs,
			Metrics:       metricsRec,
			KnowledgeBase: knowledge,
		},
		RootCause:          rootCause,
		Recommendations:    recommendations,
		PostIncidentReport: postIncident,
	}
}

func reportTitle(services []string, severity string) string {
	if len(services) == 0 || services[0] == model.DefaultAffectedService {
		return fmt.Sprintf("%s - %s", model.DefaultTitle, severity)
	}
	return fmt.Sprintf("%s in %s - %s", model.DefaultTitle, services[0], severity)
}

func decode(pc *Context, stage Stage, dst any) {
	if err := model.DecodeRecord(pc.Record(stage), dst); err != nil {
		log.Printf("Failed to decode stage record, using defaults (stage=%s): %v", stage, err)
	}
}
