package transport

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/testutil"
)

func TestHealthz_IsPublic(t *testing.T) {
	env := newAPI(t, 0)

	rec := doJSON(t, env.handler, http.MethodGet, "/healthz", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthenticate_MissingHeaderWithoutDevFallback(t *testing.T) {
	env := newAPI(t, 0)

	rec := doJSON(t, env.handler, http.MethodGet, "/api/session", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUnauthorized, errorCode(t, rec))
}

func TestAuthenticate_DefaultConfigRequiresInitData(t *testing.T) {
	defaults := config.Defaults()
	env := newAPI(t, defaults.Auth.DevTelegramID)
	env.seedUser(t,
		testutil.WithTelegramID(defaults.CLI.TelegramID),
		testutil.WithRole(domain.RoleAdmin),
		testutil.WithUserStatus(domain.UserActive))

	for _, path := range []string{"/api/session", "/api/admin/users"} {
		rec := doJSON(t, env.handler, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, CodeUnauthorized, errorCode(t, rec), path)
	}
}

func TestAuthenticate_FutureInitData(t *testing.T) {
	env := newAPI(t, 0)
	ahead := initDataFor(42, "Иван", fixedNow.Add(time.Hour), "")

	rec := doJSON(t, env.handler, http.MethodGet, "/api/session", nil, map[string]string{InitDataHeader: ahead})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredInitData(t *testing.T) {
	env := newAPI(t, 0)
	stale := initDataFor(42, "Иван", fixedNow.Add(-25*time.Hour), "")

	rec := doJSON(t, env.handler, http.MethodGet, "/api/session", nil, map[string]string{InitDataHeader: stale})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Error.Message, "expired")
}

func TestAuthenticate_MalformedInitData(t *testing.T) {
	env := newAPI(t, 0)

	rec := doJSON(t, env.handler, http.MethodGet, "/api/session", nil, map[string]string{InitDataHeader: "auth_date=1&user=%7B"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSession_UnregisteredDevIdentity(t *testing.T) {
	env := newAPI(t, 8059235604)

	rec := doJSON(t, env.handler, http.MethodGet, "/api/session", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[sessionResponse](t, rec)
	assert.Equal(t, int64(8059235604), body.TelegramID)
	assert.True(t, body.Dev)
	assert.Equal(t, statusUnregistered, body.Status)
	assert.Nil(t, body.User)
	assert.Nil(t, body.Project)
}

func TestSession_ActiveUserGetsProjectAndRoute(t *testing.T) {
	env := newAPI(t, 0)
	u := env.seedUser(t)
	headers := map[string]string{InitDataHeader: initDataFor(u.TelegramID, "Пётр", fixedNow.Add(-time.Hour), "task_17")}

	rec := doJSON(t, env.handler, http.MethodGet, "/api/session", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[sessionResponse](t, rec)
	assert.False(t, body.Dev)
	assert.Equal(t, string(domain.UserActive), body.Status)
	require.NotNil(t, body.User)
	assert.Equal(t, u.ID, body.User.ID)
	require.NotNil(t, body.Project)
	assert.Equal(t, env.project.ID, body.Project.ID)
	assert.Equal(t, "/tasks", body.Route)
}

func TestRegister_UsesInitDataNameAndGatesAccess(t *testing.T) {
	env := newAPI(t, 0)
	headers := map[string]string{InitDataHeader: initDataFor(777, "Анна", fixedNow.Add(-time.Minute), "")}

	rec := doJSON(t, env.handler, http.MethodPost, "/api/users/register", nil, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	u := decode[userDTO](t, rec)
	assert.Equal(t, "Анна", u.FullName)
	assert.Equal(t, string(domain.UserPending), u.Status)

	rec = doJSON(t, env.handler, http.MethodGet, "/api/dashboard", nil, headers)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, CodeUserPending, errorCode(t, rec))

	rec = doJSON(t, env.handler, http.MethodGet, "/api/session", nil, headers)
	assert.Equal(t, string(domain.UserPending), decode[sessionResponse](t, rec).Status)
}

func TestRegister_BodyNameWins(t *testing.T) {
	env := newAPI(t, 0)

	rec := doJSON(t, env.handler, http.MethodPost, "/api/users/register", registerRequest{FullName: "Анна Кузнецова"}, as(778))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Анна Кузнецова", decode[userDTO](t, rec).FullName)
}

func TestRequireUser_Gating(t *testing.T) {
	env := newAPI(t, 0)
	blocked := env.seedUser(t, testutil.WithUserStatus(domain.UserBlocked))

	tests := []struct {
		name       string
		telegramID int64
		wantCode   string
	}{
		{name: "unknown", telegramID: 99, wantCode: CodeNotRegistered},
		{name: "blocked", telegramID: blocked.TelegramID, wantCode: CodeUserBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, env.handler, http.MethodGet, "/api/objects", nil, as(tt.telegramID))
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	env := newAPI(t, 0)
	engineer := env.seedUser(t)

	rec := doJSON(t, env.handler, http.MethodGet, "/api/admin/users", nil, as(engineer.TelegramID))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, CodeForbidden, errorCode(t, rec))
}
