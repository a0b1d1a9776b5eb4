// Package observability holds the Prometheus instruments of the HTTP API and
// the service layer.
package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpDurationBuckets    = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	useCaseDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	bodySizeBuckets        = []float64{100, 1024, 10240, 102400, 1048576}
)

type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPResponseSizeBytes *prometheus.HistogramVec

	UseCaseExecutionsTotal *prometheus.CounterVec
	UseCaseDuration        *prometheus.HistogramVec

	ObjectsCreatedTotal       prometheus.Counter
	ScheduleItemsCreatedTotal prometheus.Counter
	TasksMaterializedTotal    prometheus.Counter

	registry prometheus.Gatherer
}

// InitMetrics creates the instruments and registers them with reg. When reg
// is also a Gatherer, Handler serves from it.
func InitMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facadeflow_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facadeflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: httpDurationBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPResponseSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facadeflow_http_response_size_bytes",
			Help:    "HTTP response body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),

		UseCaseExecutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facadeflow_use_case_executions_total",
			Help: "Total number of service use case executions.",
		}, []string{"use_case", "status"}),
		UseCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facadeflow_use_case_duration_seconds",
			Help:    "Service use case duration in seconds.",
			Buckets: useCaseDurationBuckets,
		}, []string{"use_case"}),

		ObjectsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facadeflow_objects_created_total",
			Help: "Construction objects created.",
		}),
		ScheduleItemsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facadeflow_schedule_items_created_total",
			Help: "Work schedule rows materialized from the GPR catalog.",
		}),
		TasksMaterializedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facadeflow_tasks_materialized_total",
			Help: "Workflow tasks materialized for objects.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSizeBytes,
		m.UseCaseExecutionsTotal,
		m.UseCaseDuration,
		m.ObjectsCreatedTotal,
		m.ScheduleItemsCreatedTotal,
		m.TasksMaterializedTotal,
	)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.registry = g
	}
	return m
}

func (m *Metrics) RecordHTTPRequest(method, pathPattern string, status int, duration time.Duration, respSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(respSize))
}

// ObserveUseCase makes Metrics a service.UseCaseObserver. Materialization
// counts are read from the event fields the object use cases publish.
func (m *Metrics) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	status := "success"
	if !e.Success {
		status = "error"
	}
	m.UseCaseExecutionsTotal.WithLabelValues(e.Name, status).Inc()
	m.UseCaseDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
	if !e.Success {
		return
	}

	switch e.Name {
	case "create-object":
		m.ObjectsCreatedTotal.Inc()
		m.ScheduleItemsCreatedTotal.Add(float64(intField(e.Fields, "schedule_items")))
		m.TasksMaterializedTotal.Add(float64(intField(e.Fields, "tasks")))
	case "materialize-tasks":
		m.TasksMaterializedTotal.Add(float64(intField(e.Fields, "tasks")))
	}
}

func intField(fields map[string]any, key string) int {
	n, _ := fields[key].(int)
	return n
}

// Middleware records request metrics under chi's route pattern so that
// object ids do not become label values.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		m.RecordHTTPRequest(r.Method, routePattern(r), sw.status, time.Since(start), sw.bytes)
	})
}

// Handler serves the registry InitMetrics was given, or the default one.
func (m *Metrics) Handler() http.Handler {
	if m.registry != nil {
		return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	pattern := strings.TrimSuffix(strings.Join(rctx.RoutePatterns, ""), "/*")
	if pattern == "" {
		return r.URL.Path
	}
	// Mounted subrouters repeat the slash at the seam.
	return strings.ReplaceAll(pattern, "//", "/")
}

type metricsResponseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	w.written = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
