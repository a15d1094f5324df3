package middleware

import (
	"errors"
	"net/http"

	"recipe-api/internal/auth"

	"github.com/rs/zerolog"
)

// Authenticator resolves the caller of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (auth.Identity, error)
}

// RequireAuth rejects requests without valid credentials before they reach next.
// Other authentication failures answer 500. The resolved identity is stored in
// the request context.
func RequireAuth(authn Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := authn.Authenticate(r)
			if errors.Is(err, auth.ErrUnauthenticated) {
				logger.Debug().
					Str("path", r.URL.Path).
					Str("request_id", GetRequestID(r.Context())).
					Msg("unauthenticated request")
				WriteUnauthorized(w)
				return
			}
			if err != nil {
				logger.Error().
					Err(err).
					Str("request_id", GetRequestID(r.Context())).
					Msg("failed to authenticate request")
				writeInternalError(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// WriteUnauthorized answers 401 with a Bearer challenge and an empty body.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
}
