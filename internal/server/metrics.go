package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finanzas_http_requests_total",
			Help: "HTTP requests by path and status code.",
		},
		[]string{"path", "status"},
	)

	importRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finanzas_import_rows_total",
			Help: "Statement rows processed by outcome.",
		},
		[]string{"outcome"},
	)
)

// Metrics counts requests per path and status.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		httpRequestsTotal.WithLabelValues(r.URL.Path, http.StatusText(wrapped.statusCode)).Inc()
	})
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeImport(inserted, duplicates, skipped int) {
	importRowsTotal.WithLabelValues("inserted").Add(float64(inserted))
	importRowsTotal.WithLabelValues("duplicate").Add(float64(duplicates))
	importRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}
