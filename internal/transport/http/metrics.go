package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_links_created_total",
		Help: "Total number of short SMS links created",
	})

	linkResolves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sms_link_resolves_total",
		Help: "Total number of short link resolutions by outcome",
	}, []string{"outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status code",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)

// metricsResponseWriter wraps http.ResponseWriter to capture the status code
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (mrw *metricsResponseWriter) WriteHeader(code int) {
	mrw.statusCode = code
	mrw.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with a request duration histogram labeled by
// route. Routes are static label values, never raw request paths, to keep
// metric cardinality bounded.
func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mrw := &metricsResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next(mrw, r)

		requestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(mrw.statusCode)).
			Observe(time.Since(start).Seconds())
	}
}
