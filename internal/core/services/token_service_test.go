package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidhub/api/internal/config"
	"github.com/vidhub/api/internal/core/domain"
)

func testTokenConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-test-secret",
		RefreshTokenSecret: "refresh-test-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{
		ID:     uuid.New(),
		Handle: "alice",
		Email:  "a@example.com",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	user := testUser()

	token, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	id, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	userID := uuid.New()

	token, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)

	id, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, id)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	user := testUser()

	access, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(user.ID)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTokenTTL = -time.Minute
	svc := NewTokenService(cfg)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := NewTokenService(testTokenConfig())

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token + "x")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.VerifyAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestVerifyWithWrongSecret(t *testing.T) {
	svc := NewTokenService(testTokenConfig())

	other := testTokenConfig()
	other.AccessTokenSecret = "different-secret"
	otherSvc := NewTokenService(other)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = otherSvc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
