// Package metrics registers the Prometheus collectors sitegate exports.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marcus/sitegate/internal/features"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegate_http_requests_total",
		Help: "HTTP requests by route pattern and status class",
	}, []string{"route", "class"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sitegate_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitegate_http_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter",
	})

	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegate_feature_decisions_total",
		Help: "Feature decisions by feature and reason",
	}, []string{"feature", "reason"})

	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegate_snapshot_reloads_total",
		Help: "Snapshot reloads by result",
	}, []string{"result"})

	snapshotLoadedAt = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sitegate_snapshot_loaded_timestamp_seconds",
		Help: "Unix time the current snapshot was built",
	})
)

// RecordRequest records one served HTTP request.
func RecordRequest(route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, StatusClass(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(seconds)
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	rateLimitedTotal.Inc()
}

// RecordDecision records one feature decision. Unknown feature names are
// folded into a single label value to keep cardinality bounded.
func RecordDecision(d features.Decision) {
	name := string(d.Name)
	if d.Reason == features.ReasonUnknown {
		name = "unknown"
	}
	decisionsTotal.WithLabelValues(name, string(d.Reason)).Inc()
}

// RecordReload records a snapshot reload attempt.
func RecordReload(ok bool, loadedAtUnix float64) {
	if !ok {
		reloadsTotal.WithLabelValues("error").Inc()
		return
	}
	reloadsTotal.WithLabelValues("success").Inc()
	snapshotLoadedAt.Set(loadedAtUnix)
}

// StatusClass maps an HTTP status to "2xx", "4xx" and so on.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
