// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts generated recommendations. branch is the
	// trend rule that fired, or "none".
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_recommendations_total",
			Help: "Total number of recommendations generated",
		},
		[]string{"goal", "branch"},
	)

	RecommendationFeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_recommendation_feedback_total",
			Help: "Total number of feedback submissions on recommendations",
		},
		[]string{"status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fittrack_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	FoodSearchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fittrack_food_search_errors_total",
			Help: "Total number of failed food database lookups",
		},
	)

	SessionsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fittrack_sessions_purged_total",
			Help: "Total number of scheduled expired-session purges that completed",
		},
	)
)

// RecordRecommendation counts one generated recommendation.
func RecordRecommendation(goal, branch string) {
	if branch == "" {
		branch = "none"
	}
	RecommendationsTotal.WithLabelValues(goal, branch).Inc()
}

// RecordFeedback counts one feedback submission.
func RecordFeedback(status string) {
	RecommendationFeedbackTotal.WithLabelValues(status).Inc()
}

// RecordHTTPRequest observes the latency of a finished request. route is the
// router pattern, not the raw path, to keep cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
