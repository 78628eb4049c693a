package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidhub/api/internal/core/domain"
)

// stubTokenIssuer resolves a fixed set of access tokens to account ids.
type stubTokenIssuer struct {
	accessTokens map[string]uuid.UUID
}

func (s *stubTokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	return "access-" + user.ID.String(), nil
}

func (s *stubTokenIssuer) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (s *stubTokenIssuer) VerifyAccessToken(token string) (uuid.UUID, error) {
	if id, ok := s.accessTokens[token]; ok {
		return id, nil
	}
	return uuid.Nil, domain.ErrUnauthenticated
}

func (s *stubTokenIssuer) VerifyRefreshToken(token string) (uuid.UUID, error) {
	return uuid.Nil, domain.ErrUnauthenticated
}

// stubUserRepo serves GetByID; nothing else is reachable from the gate.
type stubUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { panic("unreachable") }
func (s *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	panic("unreachable")
}
func (s *stubUserRepo) GetByHandle(context.Context, string) (*domain.User, error) {
	panic("unreachable")
}
func (s *stubUserRepo) UpdateProfile(context.Context, *domain.User) error { panic("unreachable") }
func (s *stubUserRepo) UpdatePasswordHash(context.Context, uuid.UUID, string) error {
	panic("unreachable")
}
func (s *stubUserRepo) SetRefreshToken(context.Context, uuid.UUID, *string) error {
	panic("unreachable")
}
func (s *stubUserRepo) ChannelProfile(context.Context, string, uuid.UUID) (*domain.ChannelProfile, error) {
	panic("unreachable")
}
func (s *stubUserRepo) AppendWatchHistory(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unreachable")
}
func (s *stubUserRepo) WatchHistory(context.Context, uuid.UUID, int, int) ([]*domain.Video, error) {
	panic("unreachable")
}

func newTestGate() (*AuthGate, *domain.User, string) {
	refresh := "stored-refresh"
	user := &domain.User{
		ID:           uuid.New(),
		Handle:       "alice",
		Email:        "a@example.com",
		DisplayName:  "Alice",
		PasswordHash: "$2a$10$digest",
		RefreshToken: &refresh,
	}
	token := "valid-access-token"
	gate := NewAuthGate(
		&stubTokenIssuer{accessTokens: map[string]uuid.UUID{token: user.ID}},
		&stubUserRepo{users: map[uuid.UUID]*domain.User{user.ID: user}},
	)
	return gate, user, token
}

// echoUser responds with the authenticated account, or 204 when anonymous.
func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFrom(r)
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, user)
	})
}

func TestRequireWithoutToken(t *testing.T) {
	gate, _, _ := newTestGate()

	rec := httptest.NewRecorder()
	gate.Require(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireWithBadToken(t *testing.T) {
	gate, _, _ := newTestGate()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec := httptest.NewRecorder()
	gate.Require(echoUser()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireWithCookie(t *testing.T) {
	gate, user, token := newTestGate()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	rec := httptest.NewRecorder()
	gate.Require(echoUser()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.Handle)
}

func TestRequireWithBearerHeader(t *testing.T) {
	gate, _, token := newTestGate()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.Require(echoUser()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCookieTakesPrecedenceOverHeader(t *testing.T) {
	gate, _, token := newTestGate()

	// A bad cookie loses to nothing: the header is not consulted.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "stale"})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.Require(echoUser()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireVanishedAccount(t *testing.T) {
	gate, _, _ := newTestGate()
	orphan := "orphan-token"
	gate.tokens.(*stubTokenIssuer).accessTokens[orphan] = uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: orphan})
	rec := httptest.NewRecorder()
	gate.Require(echoUser()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateSanitizesCredentials(t *testing.T) {
	gate, _, token := newTestGate()

	var seen *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = userFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	gate.Require(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Empty(t, seen.PasswordHash)
	assert.Nil(t, seen.RefreshToken)
}

func TestOptionalAnonymous(t *testing.T) {
	gate, _, _ := newTestGate()

	var viewer uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer = viewerID(r)
	})

	rec := httptest.NewRecorder()
	gate.Optional(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, uuid.Nil, viewer)
}

func TestOptionalWithToken(t *testing.T) {
	gate, user, token := newTestGate()

	var viewer uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer = viewerID(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	gate.Optional(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.ID, viewer)
}
