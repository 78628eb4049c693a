package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

// PasswordHasher is the one-way digest used for account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns false on mismatch; it only errors when the digest
	// itself is corrupt.
	Verify(digest, plaintext string) bool
}

// TokenIssuer mints and verifies the two signed bearer tokens. Access and
// refresh tokens are signed with distinct secrets and lifetimes.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken(userID uuid.UUID) (string, error)
	// VerifyAccessToken returns the embedded account id, or an error for
	// any signature/expiry/shape failure.
	VerifyAccessToken(token string) (uuid.UUID, error)
	VerifyRefreshToken(token string) (uuid.UUID, error)
}

type RegisterInput struct {
	Handle      string
	Email       string
	DisplayName string
	Password    string
	Avatar      *FileUpload
	CoverImage  *FileUpload
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthService is the session lifecycle controller: it is the only writer
// of the per-account refresh-token field.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*domain.User, *domain.TokenPair, error)
	// Logout clears the stored refresh token; calling it for an already
	// logged-out account is a no-op.
	Logout(ctx context.Context, userID uuid.UUID) error
	// Refresh rotates both tokens. A structurally valid but superseded
	// refresh token is rejected with ErrUnauthenticated.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// ChangePassword re-hashes the password and invalidates the current
	// session, forcing a fresh login everywhere.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}
