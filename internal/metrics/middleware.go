package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

const (
	namespace = "facetdex"
	unknown   = "unknown"
)

// HTTP Prometheus metrics, labelled by route pattern and questionnaire type.
var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "entity_type"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "entity_type", "status"},
	)
)

var registerHTTPOnce sync.Once

// RegisterHTTPMetrics registers HTTP metrics on the default registry. Safe to call repeatedly.
func RegisterHTTPMetrics() {
	registerHTTPOnce.Do(func() {
		prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
	})
}

// Middleware records HTTP request duration and count.
// Must wrap the router so the route context is filled when the handler returns.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route, et := routeLabels(r)

			httpRequestDuration.WithLabelValues(r.Method, route, et).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, route, et, strconv.Itoa(status)).Inc()
		})
	}
}

// routeLabels returns the chi route pattern and the canonical questionnaire type.
// Raw URLs and unparsed type segments never become label values.
func routeLabels(r *http.Request) (route, entityType string) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.RoutePattern() == "" {
		return unknown, unknown
	}
	route = rctx.RoutePattern()

	entityType = "none"
	if seg := rctx.URLParam("type"); seg != "" {
		entityType = unknown
		if t, err := entity.Parse(seg); err == nil {
			entityType = t.String()
		}
	}
	return route, entityType
}
