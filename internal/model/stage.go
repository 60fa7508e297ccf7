// 분석 파이프라인 단계별 typed record 정의
//
// 필드명은 Stand-In 응답과 리포트에서 key로 직접 참조하므로 변경 금지.
// 정의되지 않은 필드나 타입이 맞지 않는 필드는 Extra에 그대로 보존된다.

package model

// ============================================================================
// Triage
// ============================================================================

// TriageRecord - 알림 분류 및 심각도 평가 결과
type TriageRecord struct {
	Severity               string   `json:"severity"`
	BusinessImpact         string   `json:"business_impact"`
	AffectedServices       []string `json:"affected_services"`
	EscalationNeeded       bool     `json:"escalation_needed"`
	EstimatedUsersAffected int      `json:"estimated_users_affected"`
	PriorityJustification  string   `json:"priority_justification"`

	Extra map[string]any `json:"-"`
}

func (r *TriageRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"severity":                 &r.Severity,
		"business_impact":          &r.BusinessImpact,
		"affected_services":        &r.AffectedServices,
		"escalation_needed":        &r.EscalationNeeded,
		"estimated_users_affected": &r.EstimatedUsersAffected,
		"priority_justification":   &r.PriorityJustification,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r TriageRecord) MarshalJSON() ([]byte, error) {
	type plain TriageRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Log analysis
// ============================================================================

// TimelineEvent - 로그에서 추출한 시간순 이벤트
type TimelineEvent struct {
	Timestamp string `json:"timestamp"`
	Severity  string `json:"severity"`
	Event     string `json:"event"`
}

// LogAnalysisRecord - 로그 에러 패턴 분석 결과
type LogAnalysisRecord struct {
	KeyErrors     []string        `json:"key_errors"`
	ErrorPatterns []string        `json:"error_patterns"`
	Timeline      []TimelineEvent `json:"timeline"`

	Extra map[string]any `json:"-"`
}

func (r *LogAnalysisRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"key_errors":     &r.KeyErrors,
		"error_patterns": &r.ErrorPatterns,
		"timeline":       &r.Timeline,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r LogAnalysisRecord) MarshalJSON() ([]byte, error) {
	type plain LogAnalysisRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Metrics analysis
// ============================================================================

// ThresholdBreach - 임계치를 넘은 메트릭
type ThresholdBreach struct {
	Metric    string `json:"metric"`
	Value     string `json:"value"`
	Threshold string `json:"threshold"`
	Severity  string `json:"severity"`
	Duration  string `json:"duration"`
}

// MetricsRecord - 메트릭 성능 분석 결과
type MetricsRecord struct {
	ThresholdBreaches   []ThresholdBreach `json:"threshold_breaches"`
	ResourceConstraints []string          `json:"resource_constraints"`
	PerformanceImpact   string            `json:"performance_impact"`

	Extra map[string]any `json:"-"`
}

func (r *MetricsRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"threshold_breaches":   &r.ThresholdBreaches,
		"resource_constraints": &r.ResourceConstraints,
		"performance_impact":   &r.PerformanceImpact,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r MetricsRecord) MarshalJSON() ([]byte, error) {
	type plain MetricsRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Knowledge correlation
// ============================================================================

// SimilarIncident - 과거 유사 장애
type SimilarIncident struct {
	IncidentID      string  `json:"incident_id"`
	Date            string  `json:"date"`
	SimilarityScore float64 `json:"similarity_score"`
	RootCause       string  `json:"root_cause"`
	Resolution      string  `json:"resolution"`
}

// KnowledgeRecord - 과거 장애 이력 상관 분석 결과
type KnowledgeRecord struct {
	SimilarIncidents []SimilarIncident `json:"similar_incidents"`
	Patterns         []string          `json:"patterns"`

	Extra map[string]any `json:"-"`
}

func (r *KnowledgeRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"similar_incidents": &r.SimilarIncidents,
		"patterns":          &r.Patterns,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r KnowledgeRecord) MarshalJSON() ([]byte, error) {
	type plain KnowledgeRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Root cause
// ============================================================================

// RootCauseRecord - 근본 원인 분석 결과
type RootCauseRecord struct {
	PrimaryCause        string   `json:"primary_cause"`
	ContributingFactors []string `json:"contributing_factors"`
	FailureChain        string   `json:"failure_chain"`
	SupportingEvidence  []string `json:"supporting_evidence"`
	ConfidenceLevel     string   `json:"confidence_level"`

	Extra map[string]any `json:"-"`
}

func (r *RootCauseRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"primary_cause":        &r.PrimaryCause,
		"contributing_factors": &r.ContributingFactors,
		"failure_chain":        &r.FailureChain,
		"supporting_evidence":  &r.SupportingEvidence,
		"confidence_level":     &r.ConfidenceLevel,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r RootCauseRecord) MarshalJSON() ([]byte, error) {
	type plain RootCauseRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Recommendations
// ============================================================================

// ActionItem - 조치 항목 (즉시 조치는 EstimatedTime/Risk, 장기 조치는 EstimatedEffort/Owner 사용)
type ActionItem struct {
	Action          string `json:"action"`
	Priority        string `json:"priority"`
	EstimatedTime   string `json:"estimated_time,omitempty"`
	Risk            string `json:"risk,omitempty"`
	EstimatedEffort string `json:"estimated_effort,omitempty"`
	Owner           string `json:"owner,omitempty"`
}

// RecommendationsRecord - 조치 권고 결과
type RecommendationsRecord struct {
	ImmediateActions []ActionItem `json:"immediate_actions"`
	LongTermActions  []ActionItem `json:"long_term_actions"`

	Extra map[string]any `json:"-"`
}

func (r *RecommendationsRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"immediate_actions": &r.ImmediateActions,
		"long_term_actions": &r.LongTermActions,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r RecommendationsRecord) MarshalJSON() ([]byte, error) {
	type plain RecommendationsRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Post-incident report
// ============================================================================

// PostIncidentRecord - 사후 분석 리포트
type PostIncidentRecord struct {
	IncidentSummary    string   `json:"incident_summary"`
	Timeline           []string `json:"timeline"`
	LessonsLearned     []string `json:"lessons_learned"`
	PreventiveMeasures []string `json:"preventive_measures"`
	ActionItems        []string `json:"action_items"`

	Extra map[string]any `json:"-"`
}

func (r *PostIncidentRecord) UnmarshalJSON(data []byte) error {
	extra, err := decodeFields(data, fieldSet{
		"incident_summary":    &r.IncidentSummary,
		"timeline":            &r.Timeline,
		"lessons_learned":     &r.LessonsLearned,
		"preventive_measures": &r.PreventiveMeasures,
		"action_items":        &r.ActionItems,
	})
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func (r PostIncidentRecord) MarshalJSON() ([]byte, error) {
	type plain PostIncidentRecord
	return encodeWithExtra(plain(r), r.Extra)
}

// ============================================================================
// Generic
// ============================================================================

// GenericRecord - 어떤 단계에도 매칭되지 않을 때의 일반 응답
type GenericRecord struct {
	Analysis        string   `json:"analysis"`
	Confidence      string   `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}
