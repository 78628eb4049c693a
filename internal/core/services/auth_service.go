package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

// AuthService orchestrates login, logout, refresh-token rotation and
// password changes. It is the single writer of the per-account stored
// refresh token; every other component only reads it.
//
// Policy decisions, held uniformly:
//   - an unknown email and a wrong password produce the same error, so
//     login never reveals whether an account exists;
//   - changing the password clears the stored refresh token, ending the
//     session on every device.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	media  ports.MediaStore
	log    *slog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, media ports.MediaStore, log *slog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, media: media, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	handle := strings.ToLower(strings.TrimSpace(input.Handle))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	displayName := strings.TrimSpace(input.DisplayName)

	if handle == "" || email == "" || displayName == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: handle, email, display name and password are required", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrInvalidRequest)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Handle:       handle,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}

	// Profile media is optional; a failed avatar upload aborts
	// registration before any row exists.
	if input.Avatar != nil {
		asset, err := s.media.Upload(ctx, "avatars", *input.Avatar)
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		user.Avatar = asset
	}
	if input.CoverImage != nil {
		asset, err := s.media.Upload(ctx, "covers", *input.CoverImage)
		if err != nil {
			s.rollbackAsset(ctx, user.Avatar)
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
		user.CoverImage = asset
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.rollbackAsset(ctx, user.Avatar)
		s.rollbackAsset(ctx, user.CoverImage)
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.User, *domain.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidRequest)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.log.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The account vanished mid-session; logging out is still done.
			return nil
		}
		return err
	}
	s.log.InfoContext(ctx, "user logged out", "user_id", userID)
	return nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		// Treat a vanished account the same as a bad token.
		return nil, domain.ErrUnauthenticated
	}

	// A signed, unexpired token is not enough: it must also be the one
	// currently on record. A superseded token fails here, which is what
	// makes rotation an invalidation.
	if user.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, domain.ErrUnauthenticated
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "session refreshed", "user_id", user.ID)
	return pair, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old and new passwords are required", domain.ErrInvalidRequest)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	// End the current session: the old refresh token must not outlive
	// the credential it was issued under.
	if err := s.users.SetRefreshToken(ctx, userID, nil); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "password changed, sessions invalidated", "user_id", userID)
	return nil
}

// issueTokenPair mints both tokens and persists the refresh token,
// unconditionally overwriting (and thereby invalidating) any previous one.
func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// rollbackAsset deletes an uploaded asset after a later step failed. The
// delete itself failing only leaves an orphan on the media host.
func (s *AuthService) rollbackAsset(ctx context.Context, asset *domain.Asset) {
	if asset == nil {
		return
	}
	if err := s.media.Delete(ctx, asset.Key); err != nil {
		s.log.WarnContext(ctx, "failed to roll back uploaded asset", "key", asset.Key, "error", err)
	}
}
