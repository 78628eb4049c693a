package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const historyPageSize = 20

type UserService struct {
	users ports.UserRepository
	media ports.MediaStore
	log   *slog.Logger
}

func NewUserService(users ports.UserRepository, media ports.MediaStore, log *slog.Logger) *UserService {
	return &UserService{users: users, media: media, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name must not be empty", domain.ErrInvalidRequest)
		}
		user.DisplayName = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: malformed email", domain.ErrInvalidRequest)
		}
		user.Email = email
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, upload ports.FileUpload) (*domain.User, error) {
	return s.replaceImage(ctx, userID, upload, "avatars", func(u *domain.User) **domain.Asset { return &u.Avatar })
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, upload ports.FileUpload) (*domain.User, error) {
	return s.replaceImage(ctx, userID, upload, "covers", func(u *domain.User) **domain.Asset { return &u.CoverImage })
}

// replaceImage uploads the new asset first, persists the reference, then
// deletes the old asset. Failing the final delete only orphans a file on
// the media host.
func (s *UserService) replaceImage(ctx context.Context, userID uuid.UUID, upload ports.FileUpload, folder string, field func(*domain.User) **domain.Asset) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := s.media.Upload(ctx, folder, upload)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", folder, err)
	}

	old := *field(user)
	*field(user) = asset
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if delErr := s.media.Delete(ctx, asset.Key); delErr != nil {
			s.log.WarnContext(ctx, "failed to roll back uploaded asset", "key", asset.Key, "error", delErr)
		}
		return nil, err
	}

	if old != nil {
		if err := s.media.Delete(ctx, old.Key); err != nil {
			s.log.WarnContext(ctx, "failed to delete replaced asset", "key", old.Key, "error", err)
		}
	}
	return user, nil
}

func (s *UserService) ChannelProfile(ctx context.Context, handle string, viewerID uuid.UUID) (*domain.ChannelProfile, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" {
		return nil, fmt.Errorf("%w: handle is required", domain.ErrInvalidRequest)
	}
	return s.users.ChannelProfile(ctx, handle, viewerID)
}

func (s *UserService) WatchHistory(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Video, error) {
	if page < 1 {
		page = 1
	}
	return s.users.WatchHistory(ctx, userID, historyPageSize, (page-1)*historyPageSize)
}
