package api

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/tinto-app/backend/internal/api/respond"
	"github.com/tinto-app/backend/internal/model"
)

// SessionHeader carries the client session token set by the identifier
// proxy in front of this service.
const SessionHeader = "MU-SESSION-ID"

type contextKey string

const principalContextKey contextKey = "principal"

// PrincipalResolver resolves a raw session token to a user principal.
type PrincipalResolver interface {
	ResolveBySession(ctx context.Context, rawToken string) (*model.UserPrincipal, error)
}

// NewPrincipalMiddleware resolves the session token once per request and
// attaches the principal to the request context. Requests without a token
// or with an unknown session pass through unauthenticated; handlers
// decide whether that is acceptable. A store-level resolution failure is
// not the same as not being logged in: it ends the request with 500 so a
// triplestore outage is never reported as a missing user.
func NewPrincipalMiddleware(resolver PrincipalResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionHeader)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := resolver.ResolveBySession(r.Context(), token)
			if errors.Is(err, model.ErrNotFound) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Error().Err(err).Msg("principal resolution failed")
				respond.WriteInternalError(w, "Error resolving session")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
		})
	}
}

// PrincipalFromContext returns the resolved principal for the request,
// if any.
func PrincipalFromContext(ctx context.Context) (*model.UserPrincipal, bool) {
	p, ok := ctx.Value(principalContextKey).(*model.UserPrincipal)
	return p, ok
}

// ContextWithPrincipal injects a principal; used by the middleware and by
// tests.
func ContextWithPrincipal(ctx context.Context, p *model.UserPrincipal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// Recover intercepts panics from downstream handlers, logs details, and
// returns HTTP 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/vnd.api+json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"errors":[{"title":"Internal Server Error"}]}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
