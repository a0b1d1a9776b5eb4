package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/porbotenet-wq/facadeflow/internal/app"
	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/observability"
	"github.com/porbotenet-wq/facadeflow/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

type apiEnv struct {
	app     *app.App
	cfg     *config.Config
	handler http.Handler
	project *domain.Project
	logs    *bytes.Buffer
}

// newAPI builds the router over an in-memory database with one project.
// devID sets the header-less fallback identity; zero disables it.
func newAPI(t *testing.T, devID int64) *apiEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	reg := prometheus.NewRegistry()
	metrics := observability.InitMetrics(reg)
	a := app.New(database, metrics)

	p, err := a.Projects.Create(context.Background(), "Фасады 2024", "")
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.Auth.DevTelegramID = devID
	logs := &bytes.Buffer{}

	h := NewRouter(Dependencies{
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(logs, nil)),
		Metrics:   metrics,
		Now:       func() time.Time { return fixedNow },
		Projects:  a.Projects,
		Users:     a.Users,
		Objects:   a.Objects,
		Tasks:     a.Tasks,
		Dashboard: a.Dashboard,
		PlanFact:  a.PlanFact,
		Facades:   a.Facades,
		Gantt:     a.Gantt,
		Workflow:  a.Workflow,
	})
	return &apiEnv{app: a, cfg: cfg, handler: h, project: p, logs: logs}
}

// seedUser stores a user directly, bypassing registration.
func (e *apiEnv) seedUser(t *testing.T, opts ...testutil.UserOption) *domain.User {
	t.Helper()
	u := testutil.NewTestUser("Пётр Сидоров", opts...)
	require.NoError(t, e.app.Repos.Users.Create(context.Background(), u))
	return u
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewBuffer(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Error ErrorEnvelope `json:"error"`
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rec).Error.Code
}

// initDataFor encodes a Mini App launch payload issued at authDate.
func initDataFor(telegramID int64, firstName string, authDate time.Time, startParam string) string {
	v := url.Values{}
	v.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	v.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	v.Set("hash", "c501b71e775f74ce10e377dea85a7ea24ecd640b223ea86dfe453e0eaed2e2b2")
	v.Set("user", `{"id":`+strconv.FormatInt(telegramID, 10)+`,"first_name":"`+firstName+`"}`)
	if startParam != "" {
		v.Set("start_param", startParam)
	}
	return v.Encode()
}

func as(telegramID int64) map[string]string {
	return map[string]string{InitDataHeader: initDataFor(telegramID, "Тест", fixedNow.Add(-time.Minute), "")}
}
