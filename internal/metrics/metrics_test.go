package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/analysis"
)

func TestObserveAnalysis_PerCompany(t *testing.T) {
	p := New(prometheus.NewRegistry())

	p.ObserveAnalysis(&analysis.Findings{
		OverallSentiment: "POSITIVE",
		CompaniesDetected: []analysis.Company{
			{Name: "Equinor", Confidence: 0.98},
			{Name: "DNB", Confidence: 0.87},
		},
	}, 120*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.analysisTotal.WithLabelValues("POSITIVE", "Equinor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.analysisTotal.WithLabelValues("POSITIVE", "DNB")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.companiesDetected))
	assert.Equal(t, 2, testutil.CollectAndCount(p.confidence))
	assert.Equal(t, 1, testutil.CollectAndCount(p.analysisDuration))
}

func TestObserveAnalysis_NoCompanies(t *testing.T) {
	p := New(prometheus.NewRegistry())

	p.ObserveAnalysis(&analysis.Findings{OverallSentiment: "NEUTRAL", CompaniesDetected: []analysis.Company{}}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.analysisTotal.WithLabelValues("NEUTRAL", "UNKNOWN")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.companiesDetected))
	assert.Equal(t, 0, testutil.CollectAndCount(p.confidence))
}

func TestObserveAnalysisFailure(t *testing.T) {
	p := New(prometheus.NewRegistry())

	p.ObserveAnalysisFailure("SubscriptionRequiredException", time.Millisecond)
	p.ObserveAnalysisFailure("", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.analysisFailures.WithLabelValues("SubscriptionRequiredException")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.analysisFailures.WithLabelValues("UNKNOWN")))
}

func TestObserveStoredAndRequest(t *testing.T) {
	p := New(prometheus.NewRegistry())

	p.ObserveStored(true)
	p.ObserveStored(true)
	p.ObserveStored(false)
	p.ObserveRequest(200)
	p.ObserveRequest(400)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.resultsStored.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.resultsStored.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requestsTotal.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requestsTotal.WithLabelValues("400")))
}
