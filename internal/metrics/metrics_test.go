package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cutting", "cutting_plateau"))
	RecordRecommendation("cutting", "cutting_plateau")
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cutting", "cutting_plateau")); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}

	beforeNone := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("balanced", "none"))
	RecordRecommendation("balanced", "")
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("balanced", "none")); got != beforeNone+1 {
		t.Errorf("empty branch should count as none, got %v", got)
	}
}

func TestRecordFeedback(t *testing.T) {
	before := testutil.ToFloat64(RecommendationFeedbackTotal.WithLabelValues("followed"))
	RecordFeedback("followed")
	RecordFeedback("followed")
	if got := testutil.ToFloat64(RecommendationFeedbackTotal.WithLabelValues("followed")); got != before+2 {
		t.Errorf("counter = %v, want %v", got, before+2)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/api/health", 200, 15*time.Millisecond)
	if n := testutil.CollectAndCount(HTTPRequestDuration, "fittrack_http_request_duration_seconds"); n == 0 {
		t.Error("expected at least one histogram series")
	}
}

func TestMetricsLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer,
		"fittrack_recommendations_total",
		"fittrack_recommendation_feedback_total",
		"fittrack_food_search_errors_total",
	)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, p := range problems {
		t.Errorf("lint %s: %s", p.Metric, p.Text)
	}
}
