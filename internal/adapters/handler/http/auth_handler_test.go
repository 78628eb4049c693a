package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

// fakeAuthService answers with canned results so the handler's cookie and
// status behavior can be checked in isolation.
type fakeAuthService struct {
	user        *domain.User
	pair        *domain.TokenPair
	loginErr    error
	refreshErr  error
	refreshedBy string
	loggedOut   []uuid.UUID
}

func (f *fakeAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Handle == "taken" {
		return nil, domain.ErrConflict
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(_ context.Context, input ports.LoginInput) (*domain.User, *domain.TokenPair, error) {
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.user, f.pair, nil
}

func (f *fakeAuthService) Logout(_ context.Context, userID uuid.UUID) error {
	f.loggedOut = append(f.loggedOut, userID)
	return nil
}

func (f *fakeAuthService) Refresh(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.refreshedBy = refreshToken
	return f.pair, nil
}

func (f *fakeAuthService) ChangePassword(context.Context, uuid.UUID, string, string) error {
	return nil
}

func newTestAuthHandler(svc *fakeAuthService) *AuthHandler {
	return NewAuthHandler(svc, "", 15*time.Minute, 7*24*time.Hour)
}

func testSession() (*domain.User, *domain.TokenPair) {
	user := &domain.User{ID: uuid.New(), Handle: "alice", Email: "a@example.com"}
	pair := &domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	return user, pair
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestLoginSetsSessionCookies(t *testing.T) {
	user, pair := testSession()
	h := newTestAuthHandler(&fakeAuthService{user: user, pair: pair})

	body := strings.NewReader(`{"email":"a@example.com","password":"Secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(t, rec, accessTokenCookie)
	assert.Equal(t, "new-access", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)

	refresh := cookieByName(t, rec, refreshTokenCookie)
	assert.Equal(t, "new-refresh", refresh.Value)
	assert.True(t, refresh.HttpOnly)

	var resp sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, pair.AccessToken, resp.Tokens.AccessToken)
}

func TestLoginFailureSetsNoCookies(t *testing.T) {
	h := newTestAuthHandler(&fakeAuthService{loginErr: domain.ErrInvalidCredentials})

	body := strings.NewReader(`{"email":"a@example.com","password":"wrong"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Contains(t, rec.Body.String(), domain.ErrInvalidCredentials.Error())
}

func TestLoginMalformedBody(t *testing.T) {
	h := newTestAuthHandler(&fakeAuthService{})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshFromCookie(t *testing.T) {
	_, pair := testSession()
	svc := &fakeAuthService{pair: pair}
	h := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "old-refresh"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old-refresh", svc.refreshedBy)
	assert.Equal(t, "new-refresh", cookieByName(t, rec, refreshTokenCookie).Value)
	assert.Equal(t, "new-access", cookieByName(t, rec, accessTokenCookie).Value)
}

func TestRefreshFallsBackToBody(t *testing.T) {
	_, pair := testSession()
	svc := &fakeAuthService{pair: pair}
	h := newTestAuthHandler(svc)

	body := strings.NewReader(`{"refresh_token":"body-refresh"}`)
	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/users/refresh-token", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body-refresh", svc.refreshedBy)
}

func TestRefreshFailureExpiresCookies(t *testing.T) {
	h := newTestAuthHandler(&fakeAuthService{refreshErr: domain.ErrUnauthenticated})

	req := httptest.NewRequest(http.MethodPost, "/api/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "superseded"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Negative(t, cookieByName(t, rec, accessTokenCookie).MaxAge)
	assert.Negative(t, cookieByName(t, rec, refreshTokenCookie).MaxAge)
}

func TestLogoutClearsCookies(t *testing.T) {
	user, _ := testSession()
	svc := &fakeAuthService{}
	h := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserKey, user))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{user.ID}, svc.loggedOut)
	assert.Negative(t, cookieByName(t, rec, accessTokenCookie).MaxAge)
	assert.Negative(t, cookieByName(t, rec, refreshTokenCookie).MaxAge)
}

func TestLogoutWithoutGate(t *testing.T) {
	h := newTestAuthHandler(&fakeAuthService{})

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/users/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordExpiresCookies(t *testing.T) {
	user, _ := testSession()
	h := newTestAuthHandler(&fakeAuthService{})

	body := strings.NewReader(`{"old_password":"Secret123","new_password":"NewSecret456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/change-password", body)
	req = req.WithContext(context.WithValue(req.Context(), UserKey, user))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Negative(t, cookieByName(t, rec, accessTokenCookie).MaxAge)
}

func TestRegisterConflict(t *testing.T) {
	h := newTestAuthHandler(&fakeAuthService{})

	body := strings.NewReader(`{"handle":"taken","email":"a@example.com","display_name":"A","password":"Secret123"}`)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/users/register", body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterCreated(t *testing.T) {
	user, _ := testSession()
	h := newTestAuthHandler(&fakeAuthService{user: user})

	body := strings.NewReader(`{"handle":"alice","email":"a@example.com","display_name":"Alice","password":"Secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}
