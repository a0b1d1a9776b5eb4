package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return InitMetrics(reg), reg
}

func TestInitMetrics_RegistersAll(t *testing.T) {
	m, reg := newTestMetrics(t)

	m.RecordHTTPRequest("GET", "/api/objects", 200, time.Millisecond, 10)
	m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "x", Success: true})

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"facadeflow_http_requests_total",
		"facadeflow_http_request_duration_seconds",
		"facadeflow_http_response_size_bytes",
		"facadeflow_use_case_executions_total",
		"facadeflow_use_case_duration_seconds",
		"facadeflow_objects_created_total",
		"facadeflow_schedule_items_created_total",
		"facadeflow_tasks_materialized_total",
	} {
		assert.True(t, names[want], want)
	}
}

func TestObserveUseCase_CountsMaterialization(t *testing.T) {
	m, _ := newTestMetrics(t)
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "create-object", Success: true,
		Fields: map[string]any{"schedule_items": 35, "tasks": 23}})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "materialize-tasks", Success: true,
		Fields: map[string]any{"tasks": 23}})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "create-object", Err: errors.New("boom"),
		Fields: map[string]any{"tasks": 23}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ObjectsCreatedTotal))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.ScheduleItemsCreatedTotal))
	assert.Equal(t, 46.0, testutil.ToFloat64(m.TasksMaterializedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCaseExecutionsTotal.WithLabelValues("create-object", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCaseExecutionsTotal.WithLabelValues("create-object", "error")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/objects/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/objects/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/objects/{id}", "418")))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m, _ := newTestMetrics(t)
	m.ObjectsCreatedTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "facadeflow_objects_created_total 1"))
}
