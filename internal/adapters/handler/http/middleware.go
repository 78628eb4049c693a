package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type contextKey string

// UserKey holds the authenticated *domain.User on the request context.
const UserKey contextKey = "user"

// AuthGate resolves an access token to an account and attaches it to the
// request context. It never mutates anything: expired tokens are rejected,
// not refreshed.
type AuthGate struct {
	tokens ports.TokenIssuer
	users  ports.UserRepository
}

func NewAuthGate(tokens ports.TokenIssuer, users ports.UserRepository) *AuthGate {
	return &AuthGate{tokens: tokens, users: users}
}

// Require rejects the request with 401 unless a valid access token
// resolves to an existing account.
func (g *AuthGate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.resolve(r)
		if err != nil {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserKey, user)))
	})
}

// Optional attaches the account when a valid token is present and lets
// the request through anonymously otherwise.
func (g *AuthGate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := g.resolve(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), UserKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

func (g *AuthGate) resolve(r *http.Request) (*domain.User, error) {
	token := extractAccessToken(r)
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := g.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := g.users.GetByID(r.Context(), userID)
	if err != nil {
		// The account may have been deleted after the token was issued.
		return nil, domain.ErrUnauthenticated
	}

	// Handlers only ever see the sanitized projection.
	user.PasswordHash = ""
	user.RefreshToken = nil
	return user, nil
}

// extractAccessToken prefers the cookie over the Authorization header.
func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// userFrom returns the authenticated account attached by the gate.
func userFrom(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	return user, ok
}

// viewerID is the caller's id under Optional auth, uuid.Nil when
// anonymous.
func viewerID(r *http.Request) uuid.UUID {
	if user, ok := userFrom(r); ok {
		return user.ID
	}
	return uuid.Nil
}
