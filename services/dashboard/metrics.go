package dashboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genolens",
			Subsystem: "dashboard",
			Name:      "uploads_total",
			Help:      "Simulated uploads by outcome.",
		},
		[]string{"outcome"},
	)
	metricAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genolens",
			Subsystem: "dashboard",
			Name:      "analyses_total",
			Help:      "Analyses by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)
	metricAnalysisLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genolens",
			Subsystem: "dashboard",
			Name:      "analysis_latency_seconds",
			Help:      "Time from analysis start to completion or failure.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
		},
		[]string{"mode"},
	)
	metricRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "genolens",
		Subsystem: "dashboard",
		Name:      "refreshes_total",
		Help:      "Insight refreshes requested on a completed analysis.",
	})
)

func recordUpload(outcome string) {
	metricUploads.WithLabelValues(outcome).Inc()
}

func recordAnalysis(mode string, outcome string, started time.Time) {
	metricAnalyses.WithLabelValues(mode, outcome).Inc()
	metricAnalysisLatency.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

func recordCancelledAnalysis(mode string) {
	metricAnalyses.WithLabelValues(mode, "cancelled").Inc()
}

func recordRefresh() {
	metricRefreshes.Inc()
}
