package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}

type CreatePlaylistInput struct {
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	Name        *string
	Description *string
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreatePlaylistInput) (*domain.Playlist, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	Update(ctx context.Context, id, callerID uuid.UUID, input UpdatePlaylistInput) (*domain.Playlist, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID, callerID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID, callerID uuid.UUID) error
}
