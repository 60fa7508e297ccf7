package fixture

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kube-rca/incident-commander/internal/model"
)

func TestSampleIncident(t *testing.T) {
	sample, err := SampleIncident()
	require.NoError(t, err)

	assert.Len(t, sample.Logs, sampleLogLines)
	input := sample.Input()
	assert.Contains(t, input.Alert, "CheckoutService error rate above threshold")
	assert.Contains(t, input.Logs, "Circuit breaker opened")
	assert.Contains(t, input.Metrics, "payment_service_availability")
	assert.Contains(t, input.Metrics, "92%")
	assert.Equal(t, sampleLogLines, strings.Count(input.Logs, "\n")+1)
}

func TestPastIncidents(t *testing.T) {
	incidents, err := PastIncidents()
	require.NoError(t, err)
	require.NotEmpty(t, incidents)
	for _, inc := range incidents {
		assert.NotEmpty(t, inc.IncidentID)
		assert.NotEmpty(t, inc.RootCause)
	}
}

func TestRankPrefersMatchingService(t *testing.T) {
	incidents := []model.HistoricalIncident{
		{IncidentID: "a", Service: "search-api", Tags: []string{"search"}},
		{IncidentID: "b", Service: "payment-service", Tags: []string{"payment", "checkout"}},
		{IncidentID: "c", Service: "cart-service"},
	}
	input := model.IncidentInput{Alert: "checkout failing", Logs: "payment-service returned 503"}

	ranked := Rank(incidents, input, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].IncidentID)
	assert.Equal(t, "a", ranked[1].IncidentID)
}

func TestRankWithoutLimit(t *testing.T) {
	incidents := []model.HistoricalIncident{{IncidentID: "a"}, {IncidentID: "b"}}
	assert.Len(t, Rank(incidents, model.IncidentInput{}, 0), 2)
	assert.Len(t, Rank(incidents, model.IncidentInput{}, 10), 2)
}

func TestHistoryLimit(t *testing.T) {
	sample, err := SampleIncident()
	require.NoError(t, err)

	incidents, err := History{}.HistoricalIncidents(context.Background(), sample.Input(), 2)
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "payment-service", incidents[0].Service)
}
