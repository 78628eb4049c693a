package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type PlaylistService struct {
	playlists ports.PlaylistRepository
	videos    ports.VideoRepository
}

func NewPlaylistService(playlists ports.PlaylistRepository, videos ports.VideoRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, input ports.CreatePlaylistInput) (*domain.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}
	playlist := &domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Get(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	return s.playlists.GetByID(ctx, id)
}

func (s *PlaylistService) Update(ctx context.Context, id, callerID uuid.UUID, input ports.UpdatePlaylistInput) (*domain.Playlist, error) {
	playlist, err := s.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidRequest)
		}
		playlist.Name = name
	}
	if input.Description != nil {
		playlist.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, id, callerID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, id)
}

func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, playlistID, callerID); err != nil {
		return err
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return err
	}
	return s.playlists.AddVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, playlistID, callerID); err != nil {
		return err
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) owned(ctx context.Context, id, callerID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return playlist, nil
}
