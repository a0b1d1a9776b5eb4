package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/porbotenet-wq/facadeflow/internal/telegram"
)

// InitDataHeader carries Telegram.WebApp.initData verbatim.
const InitDataHeader = "X-Telegram-Init-Data"

// Identity is who the request claims to be. It is not yet checked against
// the users table.
type Identity struct {
	TelegramID int64
	FullName   string
	StartParam string
	Dev        bool
}

type identityKey struct{}
type userKey struct{}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserFrom returns the active user stored by RequireUser.
func UserFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey{}).(*domain.User)
	return u
}

// Authenticate resolves the Identity from initData. Requests without the
// header fall back to cfg.DevTelegramID when it is set.
func Authenticate(cfg config.AuthConfig, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id Identity
			raw := r.Header.Get(InitDataHeader)
			switch {
			case raw != "":
				data, err := telegram.Validate(raw, cfg.MaxAge, now())
				if err != nil {
					WriteError(w, r, apiError(CodeUnauthorized, "%v", err))
					return
				}
				id = Identity{TelegramID: data.User.ID, FullName: data.User.FullName(), StartParam: data.StartParam}
			case cfg.DevTelegramID != 0:
				id = Identity{TelegramID: cfg.DevTelegramID, Dev: true}
			default:
				WriteError(w, r, apiError(CodeUnauthorized, "missing %s header", InitDataHeader))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
		})
	}
}

// RequireUser admits only ACTIVE users and stores them in the context.
func RequireUser(users service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				WriteError(w, r, apiError(CodeUnauthorized, "not authenticated"))
				return
			}
			u, err := users.Authorize(r.Context(), id.TelegramID)
			if errors.Is(err, service.ErrNotFound) {
				WriteError(w, r, apiError(CodeNotRegistered, "user is not registered"))
				return
			}
			if err != nil {
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !UserFrom(r.Context()).IsAdmin() {
			WriteError(w, r, apiError(CodeForbidden, "administrator role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
