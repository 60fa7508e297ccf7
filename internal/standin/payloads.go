package standin

import (
	"encoding/json"
	"fmt"

	"github.com/kube-rca/incident-commander/internal/model"
)

// 카테고리별 고정 payload 생성 (프로세스 내에서 항상 동일한 바이트열)
func cannedPayloads() map[Category]string {
	return map[Category]string{
		CategoryTriage:          mustMarshal(triagePayload),
		CategoryLogAnalysis:     mustMarshal(logAnalysisPayload),
		CategoryMetricsAnalysis: mustMarshal(metricsPayload),
		CategoryKnowledge:       mustMarshal(knowledgePayload),
		CategoryRootCause:       mustMarshal(rootCausePayload),
		CategoryRecommendations: mustMarshal(recommendationsPayload),
		CategoryReport:          mustMarshal(postIncidentPayload),
		CategoryGeneric:         mustMarshal(genericPayload),
	}
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("standin: failed to marshal canned payload: %v", err))
	}
	return string(data)
}

var triagePayload = model.TriageRecord{
	Severity:               "P1",
	BusinessImpact:         "High - Checkout failures blocking 8% of purchase attempts",
	AffectedServices:       []string{"checkout-service", "payment-service"},
	EscalationNeeded:       true,
	EstimatedUsersAffected: 2400,
	PriorityJustification:  "Revenue-impacting checkout outage with cascading dependency failures",
}

var logAnalysisPayload = model.LogAnalysisRecord{
	KeyErrors: []string{
		"PaymentService returned 503 Service Unavailable",
		"Circuit breaker opened for PaymentService",
		"Fallback response triggered in CheckoutService",
	},
	ErrorPatterns: []string{
		"Upstream 503 responses from payment-service starting at 18:45:02",
		"Circuit breaker tripped after consecutive payment call failures",
		"Fallback responses masking failed checkouts",
	},
	Timeline: []model.TimelineEvent{
		{Timestamp: "18:45:02", Severity: "ERROR", Event: "First 503 from PaymentService"},
		{Timestamp: "18:45:05", Severity: "WARN", Event: "Circuit breaker opened for PaymentService"},
		{Timestamp: "18:45:10", Severity: "ERROR", Event: "Fallback response triggered in CheckoutService"},
	},
}

var metricsPayload = model.MetricsRecord{
	ThresholdBreaches: []model.ThresholdBreach{
		{Metric: "payment_service_availability", Value: "92%", Threshold: "99.5%", Severity: "Critical", Duration: "6 minutes"},
		{Metric: "checkout_error_rate", Value: "8%", Threshold: "1%", Severity: "Critical", Duration: "6 minutes"},
		{Metric: "latency_p95", Value: "4.2s", Threshold: "1.5s", Severity: "High", Duration: "5 minutes"},
	},
	ResourceConstraints: []string{
		"payment-service connection pool saturated at 100%",
		"Retry traffic from checkout-service doubled upstream load",
		"Circuit breaker open for payment calls",
	},
	PerformanceImpact: "p95 latency up 180%, checkout error rate at 8%",
}

var knowledgePayload = model.KnowledgeRecord{
	SimilarIncidents: []model.SimilarIncident{
		{
			IncidentID:      "INC-2024-1107",
			Date:            "2024-11-07",
			SimilarityScore: 0.84,
			RootCause:       "Connection pool exhaustion in payment-service under peak load",
			Resolution:      "Raised pool limits and tuned circuit breaker settings",
		},
		{
			IncidentID:      "INC-2024-0815",
			Date:            "2024-08-15",
			SimilarityScore: 0.71,
			RootCause:       "Payment provider TLS certificate expiry causing 503 responses",
			Resolution:      "Rotated certificate and added expiry monitoring",
		},
	},
	Patterns: []string{
		"Payment dependency failures cascade into checkout within minutes",
		"Circuit breakers without tuned fallbacks hide failed orders",
		"Previous incidents resolved within 1-2 hours by restoring payment-service capacity",
	},
}

var rootCausePayload = model.RootCauseRecord{
	PrimaryCause: "Connection pool exhaustion in payment-service causing 503 responses to checkout-service",
	ContributingFactors: []string{
		"Peak traffic exceeded payment-service pool sizing",
		"Aggressive retries from checkout-service amplified upstream load",
		"Circuit breaker fallback returned success pages for failed orders",
	},
	FailureChain: "Traffic spike → payment-service pool exhaustion → 503 responses → circuit breaker opens → checkout fallbacks → failed orders",
	SupportingEvidence: []string{
		"payment_service_availability dropped from 99.9% to 92%",
		"Circuit breaker opened seconds after the first 503",
		"Similar pool exhaustion in INC-2024-1107",
	},
	ConfidenceLevel: "High (85%)",
}

var recommendationsPayload = model.RecommendationsRecord{
	ImmediateActions: []model.ActionItem{
		{Action: "Scale out payment-service replicas", Priority: "High", EstimatedTime: "5 minutes", Risk: "Low - Stateless service"},
		{Action: "Raise payment-service connection pool limit", Priority: "High", EstimatedTime: "10 minutes", Risk: "Low - Configuration change only"},
		{Action: "Reduce checkout-service retry budget", Priority: "Medium", EstimatedTime: "15 minutes", Risk: "Medium - Requires rollout"},
	},
	LongTermActions: []model.ActionItem{
		{Action: "Load test payment-service at 2x peak traffic", Priority: "High", EstimatedEffort: "2-3 days", Owner: "SRE Team"},
		{Action: "Return explicit errors from checkout fallbacks", Priority: "High", EstimatedEffort: "1 day", Owner: "Checkout Team"},
		{Action: "Alert on connection pool saturation", Priority: "Medium", EstimatedEffort: "1 day", Owner: "Platform Team"},
	},
}

var postIncidentPayload = model.PostIncidentRecord{
	IncidentSummary: "payment-service connection pool exhaustion caused checkout failures for 8% of purchase attempts over 30 minutes",
	Timeline: []string{
		"18:45 - First 503 responses from PaymentService",
		"18:45 - Circuit breaker opened for PaymentService",
		"18:47 - Checkout error rate exceeded 5%",
		"18:50 - Incident declared and on-call paged",
		"19:02 - payment-service scaled out and pool limit raised",
		"19:15 - Checkout error rate back under 1%",
	},
	LessonsLearned: []string{
		"Pool saturation was not monitored",
		"Retries from checkout amplified the outage",
		"Fallback pages hid customer-facing failures",
	},
	PreventiveMeasures: []string{
		"Capacity plan payment-service against seasonal peaks",
		"Add pool saturation alerting",
		"Cap retries with a shared retry budget",
	},
	ActionItems: []string{
		"Ship retry budget change by end of week",
		"Add pool saturation dashboard",
		"Schedule review with checkout and payment owners",
	},
}

var genericPayload = model.GenericRecord{
	Analysis:        "Stand-in response for incident analysis",
	Confidence:      "Medium",
	Recommendations: []string{"Review incident data", "Implement monitoring", "Follow up with team"},
}
