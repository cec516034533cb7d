package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests handled by the demo app",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	sdkCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sdk_call_duration_seconds",
		Help:    "Time spent in calls to the attribution SDK",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	eventSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_submissions_total",
		Help: "Event submissions by form kind and result",
	}, []string{"kind", "result"})

	deepLinkDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deeplink_dispatch_total",
		Help: "Deep links dispatched by source and final state",
	}, []string{"source", "state"})

	campaignFieldFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_field_failures_total",
		Help: "Campaign attribute queries that failed and were replaced by an empty value",
	}, []string{"field"})

	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "User notifications emitted by severity",
	}, []string{"severity"})
)

// ObserveHTTPRequest tracks the handling time of HTTP requests.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveSDKCall tracks SDK call duration.
func ObserveSDKCall(operation string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	sdkCallDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

// IncEventSubmission counts an event submission outcome.
func IncEventSubmission(kind, result string) {
	eventSubmissions.WithLabelValues(kind, result).Inc()
}

// IncDeepLinkDispatch counts a deep link reaching a terminal state.
func IncDeepLinkDispatch(source, state string) {
	deepLinkDispatches.WithLabelValues(source, state).Inc()
}

// IncCampaignFieldFailure counts an isolated campaign field failure.
func IncCampaignFieldFailure(field string) {
	campaignFieldFailures.WithLabelValues(field).Inc()
}

// IncNotification counts a notification by severity.
func IncNotification(severity string) {
	notificationsSent.WithLabelValues(severity).Inc()
}
