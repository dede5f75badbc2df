package metrics

import (
	"net/http"

	"carrental-backend/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	FailureInvalidInput = "invalid_input"
	FailureNotFound     = "not_found"
	FailureMissingRate  = "missing_rate"
	FailureInternal     = "internal"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"

	JobSuccess = "success"
	JobFailure = "failure"
)

// Metrics holds the pricing service collectors. A nil *Metrics is a no-op.
type Metrics struct {
	gatherer prometheus.Gatherer

	quotes         *prometheus.CounterVec
	quoteFailures  *prometheus.CounterVec
	rentalDays     prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
	jobRuns        *prometheus.CounterVec
	rateCardIssues *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrental_quotes_total",
			Help: "Quotes computed by duration tier.",
		}, []string{"tier"}),
		quoteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrental_quote_failures_total",
			Help: "Quote requests that failed, by low-cardinality reason.",
		}, []string{"reason"}),
		rentalDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "carrental_quote_rental_days",
			Help:    "Rental length of computed quotes.",
			Buckets: []float64{1, 2, 3, 5, 7, 14, 29, 30, 60, 90, 180, 365},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrental_rate_card_cache_lookups_total",
			Help: "Rate card cache lookups by result.",
		}, []string{"result"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrental_job_runs_total",
			Help: "Background job runs by name and status.",
		}, []string{"job", "status"}),
		rateCardIssues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carrental_rate_card_issues",
			Help: "Rate card issues found by the last audit, by code.",
		}, []string{"code"}),
	}

	reg.MustRegister(m.quotes, m.quoteFailures, m.rentalDays, m.cacheLookups, m.jobRuns, m.rateCardIssues)
	return m
}

func (m *Metrics) ObserveQuote(tier domain.Tier, days int) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(string(tier)).Inc()
	m.rentalDays.Observe(float64(days))
}

func (m *Metrics) QuoteFailed(reason string) {
	if m == nil {
		return
	}
	m.quoteFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) JobRun(job, status string) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, status).Inc()
}

// SetRateCardIssues replaces the issue gauges with the counts of the latest audit.
func (m *Metrics) SetRateCardIssues(counts map[string]int) {
	if m == nil {
		return
	}
	m.rateCardIssues.Reset()
	for code, n := range counts {
		m.rateCardIssues.WithLabelValues(code).Set(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
