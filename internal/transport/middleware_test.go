package transport

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: fmt.Errorf("%w: name is required", service.ErrValidation), wantStatus: http.StatusUnprocessableEntity, wantCode: CodeValidation},
		{name: "not found", err: fmt.Errorf("object x: %w", service.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: CodeNotFound},
		{name: "already materialized", err: service.ErrAlreadyMaterialized, wantStatus: http.StatusConflict, wantCode: CodeConflict},
		{name: "pending", err: service.ErrUserPending, wantStatus: http.StatusForbidden, wantCode: CodeUserPending},
		{name: "blocked", err: service.ErrUserBlocked, wantStatus: http.StatusForbidden, wantCode: CodeUserBlocked},
		{name: "forbidden", err: service.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: CodeForbidden},
		{name: "envelope", err: apiError(CodeBadRequest, "bad"), wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest},
		{name: "unknown", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("sql: connection refused"))

	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRecovery(t *testing.T) {
	logs := &bytes.Buffer{}
	h := Recovery(slog.New(slog.NewTextHandler(logs, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeInternal, errorCode(t, rec))
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "boom")
}

func TestCORS(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins: []string{"https://web.telegram.org"},
		AllowedMethods: []string{"GET", "PATCH"},
		AllowedHeaders: []string{"Content-Type", InitDataHeader},
		MaxAge:         600,
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := CORS(cfg)(next)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/objects", nil)
		req.Header.Set("Origin", "https://web.telegram.org")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://web.telegram.org", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, PATCH", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, "+InitDataHeader, rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("foreign origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/objects", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		wild := CORS(config.CORSConfig{AllowedOrigins: []string{"*"}})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anything.example")
		rec := httptest.NewRecorder()
		wild.ServeHTTP(rec, req)

		assert.Equal(t, "https://anything.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(requestIDHeader))
}

func TestRequestLogging(t *testing.T) {
	logs := &bytes.Buffer{}
	h := RequestLogging(slog.New(slog.NewTextHandler(logs, nil)))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/objects", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, logs.String(), "status=201")
	assert.Contains(t, logs.String(), "path=/api/objects")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newAPI(t, 0)
	u := env.seedUser(t)
	createObject(t, env, as(u.TelegramID))
	doJSON(t, env.handler, http.MethodGet, "/healthz", nil, nil)

	rec := doJSON(t, env.handler, http.MethodGet, "/metrics", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "facadeflow_http_requests_total")
	assert.Contains(t, body, "facadeflow_objects_created_total 1")
	assert.Contains(t, body, "facadeflow_schedule_items_created_total 35")
}
