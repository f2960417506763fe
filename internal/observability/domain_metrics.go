package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	asksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stockpilot_asks_total",
			Help: "Total number of ask interactions.",
		},
	)
	translationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockpilot_translations_total",
			Help: "Total number of natural-language-to-SQL translations by outcome.",
		},
		[]string{"outcome"},
	)
	guardRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stockpilot_sql_guard_rejections_total",
			Help: "Total number of statements rejected by the read-only SQL guard.",
		},
	)
	queryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stockpilot_query_failures_total",
			Help: "Total number of failed database query executions.",
		},
	)
	summaryFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stockpilot_summary_fallbacks_total",
			Help: "Total number of answers rendered via the tabular fallback.",
		},
	)
	askLatencySeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockpilot_ask_latency_seconds",
			Help:    "End-to-end ask pipeline latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
)

func init() {
	prometheus.MustRegister(
		asksTotal,
		translationsTotal,
		guardRejectionsTotal,
		queryFailuresTotal,
		summaryFallbacksTotal,
		askLatencySeconds,
	)
}

func ObserveAsk(elapsed time.Duration) {
	asksTotal.Inc()
	askLatencySeconds.Observe(elapsed.Seconds())
}

func ObserveTranslation(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	translationsTotal.WithLabelValues(outcome).Inc()
}

func IncrementGuardRejection() {
	guardRejectionsTotal.Inc()
}

func IncrementQueryFailure() {
	queryFailuresTotal.Inc()
}

func IncrementSummaryFallback() {
	summaryFallbacksTotal.Inc()
}
