// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Feed load results.
const (
	FeedOK         = "ok"
	FeedError      = "error"
	FeedSuperseded = "superseded"
)

var (
	feedLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swapdemo",
			Subsystem: "feed",
			Name:      "loads_total",
			Help:      "Price feed loads by result",
		},
		[]string{"result"},
	)
	feedRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "swapdemo",
			Subsystem: "feed",
			Name:      "rejected_entries_total",
			Help:      "Feed entries dropped during normalization",
		},
	)
	feedFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "swapdemo",
			Subsystem: "feed",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of price feed fetch and normalization",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
	quotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swapdemo",
			Name:      "quotes_total",
			Help:      "Quotes computed, split by whether an output amount was available",
		},
		[]string{"result"},
	)
	verdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swapdemo",
			Name:      "verdicts_total",
			Help:      "Swap validation verdicts by failing reason",
		},
		[]string{"reason"},
	)
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swapdemo",
			Name:      "submissions_total",
			Help:      "Simulated swap submissions by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		feedLoads,
		feedRejected,
		feedFetchDuration,
		quotesTotal,
		verdictsTotal,
		submissionsTotal,
	)
}

// RecordFeedLoad counts a feed load and, for completed fetches, its duration.
func RecordFeedLoad(result string, duration time.Duration) {
	feedLoads.WithLabelValues(result).Inc()
	if result != FeedSuperseded {
		feedFetchDuration.Observe(duration.Seconds())
	}
}

// RecordRejected adds n dropped feed entries.
func RecordRejected(n int) {
	if n > 0 {
		feedRejected.Add(float64(n))
	}
}

// RecordQuote counts a computed quote.
func RecordQuote(quotable bool) {
	result := "quotable"
	if !quotable {
		result = "unquotable"
	}
	quotesTotal.WithLabelValues(result).Inc()
}

// RecordVerdict counts a verdict; passing verdicts are labelled "ok".
func RecordVerdict(ok bool, reason string) {
	if ok {
		reason = "ok"
	}
	verdictsTotal.WithLabelValues(reason).Inc()
}

// RecordSubmission counts a submission attempt.
func RecordSubmission(result string) {
	submissionsTotal.WithLabelValues(result).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
