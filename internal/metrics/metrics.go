// Package metrics holds the Prometheus collectors for the server and the
// handler that exposes them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghclone_upstream_requests_total",
		Help: "GitHub API requests by endpoint and status class",
	}, []string{"endpoint", "status"})
	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ghclone_upstream_request_duration_seconds",
		Help:    "GitHub API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	Searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghclone_searches_total",
		Help: "User searches by outcome",
	}, []string{"outcome"})
	ProfileLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghclone_profile_loads_total",
		Help: "Profile page loads by outcome",
	}, []string{"outcome"})
	ThemeToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghclone_theme_toggles_total",
		Help: "Theme toggles by resulting theme",
	}, []string{"theme"})
)

func init() {
	prometheus.MustRegister(UpstreamRequests, UpstreamDuration, Searches, ProfileLoads, ThemeToggles)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one finished GitHub API call. status is the HTTP
// status code, or 0 when the request never got a response.
func ObserveUpstream(endpoint string, status int, start time.Time) {
	UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	UpstreamRequests.WithLabelValues(endpoint, StatusClass(status)).Inc()
}

// StatusClass buckets a status code into "2xx", "4xx", ... to keep label
// cardinality low. 0 becomes "error".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
