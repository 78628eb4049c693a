package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	// SetRefreshToken unconditionally overwrites the stored refresh token;
	// nil invalidates the session.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error

	ChannelProfile(ctx context.Context, handle string, viewerID uuid.UUID) (*domain.ChannelProfile, error)
	AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
	WatchHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Video, error)
}

type UpdateProfileInput struct {
	DisplayName *string
	Email       *string
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, upload FileUpload) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, upload FileUpload) (*domain.User, error)
	ChannelProfile(ctx context.Context, handle string, viewerID uuid.UUID) (*domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Video, error)
}
