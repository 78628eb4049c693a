package integration

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidhub/api/internal/core/domain"
)

// TestSessionLifecycle walks the whole session flow: register, login,
// authenticated request, refresh rotation, logout.
func TestSessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")

	// Duplicate handle or email is a conflict.
	resp := app.postJSON(t, "/api/users/register", map[string]string{
		"handle":       "alice",
		"email":        "other@example.com",
		"display_name": "Alice Again",
		"password":     "Other456",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	sess := app.login(t, "alice@example.com", "Secret123")

	// The access cookie authenticates requests.
	resp = app.get(t, "/api/users/me", sess.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me domain.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "alice", me.Handle)

	// Refresh rotates both tokens.
	resp = app.postJSON(t, "/api/users/refresh-token", nil, sess.Refresh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := sessionFrom(t, resp)
	resp.Body.Close()
	assert.NotEqual(t, sess.Refresh.Value, rotated.Refresh.Value)

	// The presented token was invalidated by the rotation.
	resp = app.postJSON(t, "/api/users/refresh-token", nil, sess.Refresh)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The rotated one still works.
	resp = app.postJSON(t, "/api/users/refresh-token", nil, rotated.Refresh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := sessionFrom(t, resp)
	resp.Body.Close()

	// Logout ends the session and expires the cookies.
	resp = app.postJSON(t, "/api/users/logout", nil, current.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		assert.Negative(t, cookie.MaxAge, "cookie %s should be expired", cookie.Name)
	}
	resp.Body.Close()

	// Logout is idempotent.
	resp = app.postJSON(t, "/api/users/logout", nil, current.Access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// No refresh token survives logout.
	resp = app.postJSON(t, "/api/users/refresh-token", nil, current.Refresh)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")

	wrongPassword := app.postJSON(t, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	unknownEmail := app.postJSON(t, "/api/users/login", map[string]string{
		"email": "nobody@example.com", "password": "Secret123",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	// The two failures are indistinguishable: no account enumeration.
	bodyA, err := io.ReadAll(wrongPassword.Body)
	require.NoError(t, err)
	wrongPassword.Body.Close()
	bodyB, err := io.ReadAll(unknownEmail.Body)
	require.NoError(t, err)
	unknownEmail.Body.Close()
	assert.Equal(t, string(bodyA), string(bodyB))

	assert.Empty(t, wrongPassword.Cookies())
	assert.Empty(t, unknownEmail.Cookies())
}

func TestChangePasswordEndsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")
	sess := app.login(t, "alice@example.com", "Secret123")

	resp := app.postJSON(t, "/api/users/change-password", map[string]string{
		"old_password": "Secret123",
		"new_password": "NewSecret456",
	}, sess.Access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The refresh token issued before the change is dead.
	resp = app.postJSON(t, "/api/users/refresh-token", nil, sess.Refresh)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The old password no longer opens a session; the new one does.
	resp = app.postJSON(t, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "Secret123",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	app.login(t, "alice@example.com", "NewSecret456")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	for _, path := range []string{"/api/users/me", "/api/users/history", "/api/dashboard/stats"} {
		resp := app.get(t, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := app.get(t, "/api/users/me", &http.Cookie{Name: "accessToken", Value: "garbage"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
