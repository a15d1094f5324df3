// Package auth resolves the caller of a request from its bearer credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recipe-api/internal/repository"

	"github.com/rs/zerolog"
)

// ErrUnauthenticated is returned when a request carries no valid credentials.
var ErrUnauthenticated = errors.New("authentication credentials were not provided or are invalid")

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID int64
	Email  string
}

// Authenticator validates request credentials against the user store.
type Authenticator struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAuthenticator creates an authenticator.
func NewAuthenticator(tokens *TokenManager, users repository.UserRepository, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Authenticate returns the identity behind the request's Authorization header.
// Missing, malformed, expired or foreign tokens and tokens for unknown or
// inactive users yield ErrUnauthenticated. Store failures are returned wrapped.
func (a *Authenticator) Authenticate(r *http.Request) (Identity, error) {
	raw, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return Identity{}, ErrUnauthenticated
	}

	userID, _, err := a.tokens.Verify(raw)
	if err != nil {
		a.logger.Debug().Err(err).Msg("rejected bearer token")
		return Identity{}, ErrUnauthenticated
	}

	user, err := a.users.GetByID(r.Context(), userID)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.IsActive {
		a.logger.Debug().Int64("user_id", userID).Msg("token user missing or inactive")
		return Identity{}, ErrUnauthenticated
	}

	return Identity{UserID: user.ID, Email: user.Email}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the caller identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
