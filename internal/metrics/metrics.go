// Package metrics holds the Prometheus collectors for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcadeprep",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arcadeprep",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arcadeprep",
			Name:      "sessions_created_total",
			Help:      "Total number of practice sessions created",
		},
	)

	AnswersRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcadeprep",
			Name:      "answers_recorded_total",
			Help:      "Total number of answers recorded, labelled by result",
		},
		[]string{"result"}, // correct or incorrect
	)
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
