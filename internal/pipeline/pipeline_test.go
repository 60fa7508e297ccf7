package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kube-rca/incident-commander/internal/extract"
	"github.com/kube-rca/incident-commander/internal/model"
	"github.com/kube-rca/incident-commander/internal/standin"
)

var checkoutIncident = model.IncidentInput{
	Alert:   "CheckoutService error rate above threshold: 8% of requests failing for 5 minutes",
	Logs:    "2024-12-22T18:45:02Z ERROR PaymentService returned 503\n2024-12-22T18:45:05Z WARN Circuit breaker opened for PaymentService",
	Metrics: "payment_service_availability: 99.9% -> 92%\ncheckout_error_rate: 0.2% -> 8%",
}

var fixedClock = func() time.Time {
	return time.Date(2024, 12, 22, 18, 50, 0, 0, time.UTC)
}

// recordingInvoker - 프롬프트와 응답을 순서대로 기록
type recordingInvoker struct {
	next    Invoker
	prompts []string
	outputs []string
}

func (r *recordingInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	out, err := r.next.Invoke(ctx, prompt)
	r.outputs = append(r.outputs, out)
	return out, err
}

type scriptedInvoker struct {
	match string
	out   string
	err   error
	next  Invoker
}

func (s *scriptedInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, s.match) {
		return s.out, s.err
	}
	return s.next.Invoke(ctx, prompt)
}

type constInvoker string

func (c constInvoker) Invoke(context.Context, string) (string, error) {
	return string(c), nil
}

type brokenFallback struct{}

func (brokenFallback) Invoke(context.Context, string) (string, error) {
	return "still not structured", nil
}

type fakeHistory struct {
	incidents []model.HistoricalIncident
	err       error
	limit     int
}

func (f *fakeHistory) HistoricalIncidents(_ context.Context, _ model.IncidentInput, limit int) ([]model.HistoricalIncident, error) {
	f.limit = limit
	return f.incidents, f.err
}

func newPipeline(t *testing.T, inv Invoker, ext Extractor, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	p, err := New(inv, ext, opts...)
	require.NoError(t, err)
	return p
}

func TestAnalyzeCheckoutIncidentWithStandIn(t *testing.T) {
	p := newPipeline(t, standin.New(), nil)

	report, err := p.Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)

	assert.Equal(t, "P1", report.Triage.Severity)
	assert.True(t, containsAny(report.Triage.AffectedServices, "checkout", "payment"), "services=%v", report.Triage.AffectedServices)
	assert.Equal(t, "P1", report.Summary.Severity)
	assert.Equal(t, report.Triage.AffectedServices, report.Summary.AffectedServices)
	assert.Equal(t, report.RootCause.PrimaryCause, report.Summary.RootCause)
	assert.Equal(t, "Service degradation in checkout-service - P1", report.Summary.Title)
	assert.Equal(t, "INC-20241222-185000", report.IncidentID)
	assert.Equal(t, "2024-12-22T18:50:00Z", report.Timestamp)

	assert.NotEmpty(t, report.Analysis.Logs.KeyErrors)
	assert.NotEmpty(t, report.Analysis.Metrics.ThresholdBreaches)
	assert.NotEmpty(t, report.Analysis.KnowledgeBase.SimilarIncidents)
	assert.NotEmpty(t, report.Recommendations.ImmediateActions)
	assert.NotEmpty(t, report.PostIncidentReport.LessonsLearned)
}

func TestStagePromptsClassifyToTheirOwnStage(t *testing.T) {
	rec := &recordingInvoker{next: standin.New()}
	p := newPipeline(t, rec, nil)

	_, err := p.Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)

	want := []standin.Category{
		standin.CategoryTriage,
		standin.CategoryLogAnalysis,
		standin.CategoryMetricsAnalysis,
		standin.CategoryKnowledge,
		standin.CategoryRootCause,
		standin.CategoryRecommendations,
		standin.CategoryReport,
	}
	require.Len(t, rec.prompts, len(want))
	r := standin.New()
	for i, prompt := range rec.prompts {
		assert.Equal(t, want[i], r.Classify(prompt), "stage %s", Stages()[i])
	}
}

// 입력 본문에 다른 단계의 키워드 쌍이 있어도 단계 분류와 triage 결과는 바뀌지 않는다.
func TestIncidentTextDoesNotChangeStageClassification(t *testing.T) {
	payload, ok := standin.New().Payload(standin.CategoryTriage)
	require.True(t, ok)
	var wantTriage model.TriageRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &wantTriage))

	tests := []struct {
		name string
		text string
	}{
		{name: "report", text: "Attach the post-incident report template to the ticket"},
		{name: "recommendations", text: "Runbook: recommended action is to restart pods"},
		{name: "root cause", text: "On-call must determine root cause within 30 minutes"},
		{name: "knowledge", text: "See historical knowledge base article KB-112"},
		{name: "metrics", text: "WARN metrics exporter: latency above threshold, metrics analysis delayed"},
		{name: "logs", text: "log analysis agent restarted"},
		{name: "triage", text: "alert triage rotation: team-payments"},
	}

	want := []standin.Category{
		standin.CategoryTriage,
		standin.CategoryLogAnalysis,
		standin.CategoryMetricsAnalysis,
		standin.CategoryKnowledge,
		standin.CategoryRootCause,
		standin.CategoryRecommendations,
		standin.CategoryReport,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingInvoker{next: standin.New()}
			p := newPipeline(t, rec, nil)

			input := model.IncidentInput{
				Alert:   "CheckoutService error rate above threshold. " + tt.text,
				Logs:    checkoutIncident.Logs + "\n" + tt.text,
				Metrics: checkoutIncident.Metrics + "\n" + tt.text,
			}
			report, err := p.Analyze(context.Background(), input)
			require.NoError(t, err)

			require.Len(t, rec.prompts, len(want))
			r := standin.New()
			for i, prompt := range rec.prompts {
				assert.Equal(t, want[i], r.Classify(prompt), "stage %s", Stages()[i])
			}

			assert.Equal(t, wantTriage.Severity, report.Triage.Severity)
			assert.Equal(t, wantTriage.AffectedServices, report.Triage.AffectedServices)
			assert.Equal(t, wantTriage.AffectedServices, report.Summary.AffectedServices)
			assert.Empty(t, report.Triage.Extra)
			assert.NotEmpty(t, report.Analysis.Logs.KeyErrors)
			assert.Empty(t, report.Analysis.Logs.Extra)
			assert.NotEmpty(t, report.Analysis.KnowledgeBase.SimilarIncidents)
		})
	}
}

func TestPromptContainsEveryEarlierRawResponse(t *testing.T) {
	rec := &recordingInvoker{next: standin.New()}
	p := newPipeline(t, rec, nil)

	_, err := p.Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)
	require.Len(t, rec.prompts, len(Stages()))

	for k, prompt := range rec.prompts {
		for j := 0; j < k; j++ {
			assert.Contains(t, prompt, rec.outputs[j], "prompt of stage %s misses output of stage %s", Stages()[k], Stages()[j])
		}
	}
}

func TestPromptInterpolatesIncidentFields(t *testing.T) {
	rec := &recordingInvoker{next: standin.New()}
	p := newPipeline(t, rec, nil)

	_, err := p.Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)

	assert.Contains(t, rec.prompts[0], checkoutIncident.Alert)
	assert.Contains(t, rec.prompts[1], checkoutIncident.Logs)
	assert.Contains(t, rec.prompts[2], checkoutIncident.Metrics)
	assert.Contains(t, rec.prompts[3], checkoutIncident.Alert)
	assert.Contains(t, rec.prompts[5], "Severity: P1")
	assert.True(t, strings.HasPrefix(rec.prompts[0], "You are the Alert Triage Specialist."))
}

func TestAnalyzeFailsAtUnparsableStage(t *testing.T) {
	garbage := "I'm sorry, I could not analyze these numbers."
	inv := &scriptedInvoker{
		match: "Perform metrics analysis for threshold breaches",
		out:   garbage,
		next:  standin.New(),
	}
	p := newPipeline(t, inv, extract.New(brokenFallback{}))

	report, err := p.Analyze(context.Background(), checkoutIncident)
	assert.Nil(t, report)

	var serr *StageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StageMetricsAnalysis, serr.Stage)
	assert.Equal(t, garbage, serr.Raw)

	var perr *extract.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, garbage, perr.Raw)
}

func TestAnalyzeFailsOnInvokeError(t *testing.T) {
	boom := errors.New("502 bad gateway")
	inv := &scriptedInvoker{match: "Search the knowledge base", err: boom, next: standin.New()}
	p := newPipeline(t, inv, nil)

	report, err := p.Analyze(context.Background(), checkoutIncident)
	assert.Nil(t, report)

	var serr *StageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StageKnowledge, serr.Stage)
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recordingInvoker{next: standin.New()}
	p := newPipeline(t, rec, nil)

	_, err := p.Analyze(ctx, checkoutIncident)
	var serr *StageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StageTriage, serr.Stage)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.prompts)
}

func TestReportKeySetIsConstant(t *testing.T) {
	full, err := newPipeline(t, standin.New(), nil).Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)

	empty, err := newPipeline(t, constInvoker("{}"), nil).Analyze(context.Background(), model.IncidentInput{})
	require.NoError(t, err)

	assert.Equal(t, topLevelKeys(t, full), topLevelKeys(t, empty))
	assert.Equal(t, []string{
		"analysis", "incident_id", "post_incident_report", "recommendations",
		"root_cause", "summary", "timestamp", "triage",
	}, topLevelKeys(t, empty))

	assert.Equal(t, model.DefaultSeverity, empty.Summary.Severity)
	assert.Equal(t, []string{model.DefaultAffectedService}, empty.Summary.AffectedServices)
	assert.Equal(t, model.DefaultRootCause, empty.Summary.RootCause)
	assert.Equal(t, "Service degradation - P1", empty.Summary.Title)
}

func TestReportKeepsUnknownFields(t *testing.T) {
	inv := &scriptedInvoker{
		match: "Analyze this alert for triage",
		out:   "```json\n{\"severity\":\"P2\",\"affected_services\":[\"search-api\"],\"region\":\"eu-west-1\"}\n```",
		next:  standin.New(),
	}
	report, err := newPipeline(t, inv, nil).Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)

	assert.Equal(t, "P2", report.Summary.Severity)
	assert.Equal(t, []string{"search-api"}, report.Summary.AffectedServices)
	assert.Equal(t, "eu-west-1", report.Triage.Extra["region"])

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"region":"eu-west-1"`)
}

func TestKnowledgeStageReceivesHistory(t *testing.T) {
	history := &fakeHistory{incidents: []model.HistoricalIncident{{
		IncidentID: "INC-2024-0312",
		Title:      "Checkout latency spike",
		Service:    "checkout-service",
		RootCause:  "Slow payment gateway",
		Resolution: "Failover to secondary gateway",
	}}}
	rec := &recordingInvoker{next: standin.New()}
	p := newPipeline(t, rec, nil, WithHistory(history, 3))

	_, err := p.Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)

	assert.Equal(t, 3, history.limit)
	assert.Contains(t, rec.prompts[3], "INC-2024-0312")
	assert.NotContains(t, rec.prompts[2], "INC-2024-0312")
}

func TestKnowledgeStageSurvivesHistoryError(t *testing.T) {
	history := &fakeHistory{err: errors.New("db down")}
	rec := &recordingInvoker{next: standin.New()}
	p := newPipeline(t, rec, nil, WithHistory(history, 0))

	_, err := p.Analyze(context.Background(), checkoutIncident)
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, history.limit)
	assert.Contains(t, rec.prompts[3], noHistoryText)
}

func TestNewRequiresInvoker(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func containsAny(values []string, needles ...string) bool {
	for _, v := range values {
		for _, n := range needles {
			if strings.Contains(strings.ToLower(v), n) {
				return true
			}
		}
	}
	return false
}

func topLevelKeys(t *testing.T, report *model.IncidentReport) []string {
	t.Helper()
	data, err := json.Marshal(report)
	require.NoError(t, err)

	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &obj))
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
