package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"

	"github.com/ivanmalyar/url-alias/internal/service"
	"github.com/ivanmalyar/url-alias/pkg/response"
)

type ctxKey int

const usernameCtxKey ctxKey = iota

// basicAuth re-authenticates every request from the Authorization header.
// There is no session state; the verified username is stashed in the request
// context for the handlers.
func basicAuth(svc UserService) func(next http.Handler) http.Handler {
	const op = "api.http.basicAuth"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, r)
				return
			}

			user, err := svc.Authenticate(r.Context(), username, password)
			if err != nil {
				if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInactiveUser) {
					unauthorized(w, r)
					return
				}

				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
				return
			}

			ctx := context.WithValue(r.Context(), usernameCtxKey, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.UnauthorizedResponse)
}

// usernameFromContext returns the authenticated username set by basicAuth.
func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameCtxKey).(string)
	return username
}
