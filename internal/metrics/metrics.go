// Package metrics содержит prometheus-метрики портала: HTTP-запросы
// и обращения к удалённому сервису регистрации.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы вызова удалённого сервиса
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeBadResponse = "bad_response"
	OutcomeUnavailable = "unavailable"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_requests_total",
			Help: "Calls to the remote registry service by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	registryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registry_request_duration_seconds",
			Help:    "Remote registry call latencies in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		},
		[]string{"operation"},
	)

	gateRedirectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_gate_redirects_total",
			Help: "Requests to protected areas redirected to the login page.",
		},
		[]string{"area"},
	)

	summaryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_summary_cache_lookups_total",
			Help: "Summary cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		registryRequestsTotal,
		registryRequestDuration,
		gateRedirectsTotal,
		summaryCacheTotal,
	)
}

// Handler отдаёт метрики для /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRegistry учитывает один вызов удалённого сервиса.
func ObserveRegistry(operation, outcome string, d time.Duration) {
	registryRequestsTotal.WithLabelValues(operation, outcome).Inc()
	registryRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// GateRedirect учитывает редирект на страницу входа.
func GateRedirect(area string) {
	gateRedirectsTotal.WithLabelValues(area).Inc()
}

// CacheLookup учитывает обращение к кэшу сводок.
func CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	summaryCacheTotal.WithLabelValues(result).Inc()
}

// Instrument middleware для подсчёта запросов. Метка route берётся из
// шаблона маршрута chi, чтобы не раздувать кардинальность.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
