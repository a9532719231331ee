package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
)

const metricsNamespace = "leetle"

// 10ms -> 60s
var timeBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.2, 0.4, 0.6, 0.8, 1.0, 1.5,
	2, 3, 5, 10, 20, 30, 60,
}

var _ secondary.ExecutionObserver = (*Observer)(nil)

// Observer records runner and verifier activity in its own registry
type Observer struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	runTime       *prometheus.HistogramVec
	verifications *prometheus.CounterVec
	casesRun      *prometheus.HistogramVec
}

func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Number of code executions by language and classification",
		}, []string{"language", "classification"}),
		runTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_time_seconds",
			Help:      "Histogram for the wall-clock time of a single execution",
			Buckets:   timeBuckets,
		}, []string{"language"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "verifications_total",
			Help:      "Number of graded submissions by language and verdict",
		}, []string{"language", "verdict"}),
		casesRun: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "verification_cases_run",
			Help:      "Test cases executed before a verdict was reached",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}, []string{"language"}),
	}
	o.registry.MustRegister(o.runs, o.runTime, o.verifications, o.casesRun)
	o.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return o
}

func (o *Observer) ObserveRun(language domain.Language, res domain.ExecutionResult) {
	o.runs.WithLabelValues(string(language), string(res.Classification)).Inc()
	o.runTime.WithLabelValues(string(language)).Observe(res.Elapsed.Seconds())
}

func (o *Observer) ObserveVerification(language domain.Language, outcome domain.VerificationOutcome) {
	verdict := "incorrect"
	if outcome.Correct {
		verdict = "correct"
	}
	o.verifications.WithLabelValues(string(language), verdict).Inc()
	o.casesRun.WithLabelValues(string(language)).Observe(float64(outcome.Executed))
}

// Handler serves the registry in the Prometheus exposition format
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{Registry: o.registry})
}

func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}
