package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/analysis"
)

const unknownLabel = "UNKNOWN"

// Recorder receives observations from the request handler.
type Recorder interface {
	ObserveAnalysis(findings *analysis.Findings, duration time.Duration)
	ObserveAnalysisFailure(errorCode string, duration time.Duration)
	ObserveStored(ok bool)
	ObserveRequest(statusCode int)
}

// Prometheus records handler observations into a registry.
type Prometheus struct {
	analysisTotal     *prometheus.CounterVec
	analysisDuration  *prometheus.HistogramVec
	analysisFailures  *prometheus.CounterVec
	companiesDetected prometheus.Gauge
	confidence        *prometheus.HistogramVec
	resultsStored     *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		// analysisTotal counts analyses per sentiment and detected company
		analysisTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_analysis_total",
				Help: "Total number of sentiment analyses per sentiment/company",
			},
			[]string{"sentiment", "company"},
		),

		analysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentiment_analysis_duration_seconds",
				Help:    "Time taken to call the analysis service",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"outcome"},
		),

		analysisFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_analysis_failures_total",
				Help: "Analyses that fell back to recording the service error, by AWS error code",
			},
			[]string{"code"},
		),

		companiesDetected: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sentiment_analysis_companies_detected",
				Help: "Number of companies detected in the last analysed text",
			},
		),

		confidence: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentiment_analysis_confidence",
				Help:    "Entity confidence per company and sentiment (0.0 - 1.0)",
				Buckets: []float64{.5, .6, .7, .8, .9, .95, .99},
			},
			[]string{"sentiment", "company"},
		),

		resultsStored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_results_stored_total",
				Help: "Result objects written to the object store by outcome",
			},
			[]string{"outcome"},
		),

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_requests_total",
				Help: "Handled requests by response status code",
			},
			[]string{"status"},
		),
	}
}

func (p *Prometheus) ObserveAnalysis(findings *analysis.Findings, duration time.Duration) {
	p.analysisDuration.WithLabelValues("success").Observe(duration.Seconds())
	p.companiesDetected.Set(float64(len(findings.CompaniesDetected)))

	sentiment := labelOrUnknown(findings.OverallSentiment)
	if len(findings.CompaniesDetected) == 0 {
		p.analysisTotal.WithLabelValues(sentiment, unknownLabel).Inc()
		return
	}
	for _, company := range findings.CompaniesDetected {
		name := labelOrUnknown(company.Name)
		p.analysisTotal.WithLabelValues(sentiment, name).Inc()
		p.confidence.WithLabelValues(sentiment, name).Observe(float64(company.Confidence))
	}
}

func (p *Prometheus) ObserveAnalysisFailure(errorCode string, duration time.Duration) {
	p.analysisDuration.WithLabelValues("error").Observe(duration.Seconds())
	p.analysisFailures.WithLabelValues(labelOrUnknown(errorCode)).Inc()
}

func (p *Prometheus) ObserveStored(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	p.resultsStored.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveRequest(statusCode int) {
	p.requestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func labelOrUnknown(v string) string {
	if v == "" {
		return unknownLabel
	}
	return v
}

// Nop discards all observations. Used where nothing scrapes a registry.
type Nop struct{}

func (Nop) ObserveAnalysis(*analysis.Findings, time.Duration) {}
func (Nop) ObserveAnalysisFailure(string, time.Duration)      {}
func (Nop) ObserveStored(bool)                                {}
func (Nop) ObserveRequest(int)                                {}
