package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidhub/api/internal/config"
	"github.com/vidhub/api/internal/core/domain"
)

// accessClaims carries a small denormalized identity snapshot so handlers
// can render attribution without a lookup. The snapshot goes stale if the
// profile changes; the gate re-resolves the account anyway.
type accessClaims struct {
	jwt.RegisteredClaims
	Handle string `json:"handle"`
	Email  string `json:"email"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies both bearer tokens with HS256. The two
// token kinds use distinct secrets, so an access token can never pass as
// a refresh token or vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService requires a validated config; missing secrets have
// already aborted startup by the time this runs.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Handle: user.Handle,
		Email:  user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique jti keeps two tokens minted in the same second
			// distinct, so rotation always produces a new value.
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) VerifyAccessToken(token string) (uuid.UUID, error) {
	return verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (uuid.UUID, error) {
	return verify(token, s.refreshSecret)
}

func verify(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	if !token.Valid {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return id, nil
}
