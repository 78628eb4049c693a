package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const videoPageSize = 20

type VideoService struct {
	videos ports.VideoRepository
	users  ports.UserRepository
	media  ports.MediaStore
	log    *slog.Logger
}

func NewVideoService(videos ports.VideoRepository, users ports.UserRepository, media ports.MediaStore, log *slog.Logger) *VideoService {
	return &VideoService{videos: videos, users: users, media: media, log: log}
}

// Publish uploads the video file and thumbnail to the media host and then
// inserts the record. If the insert fails, the uploads are rolled back so
// the host holds no unreferenced assets.
func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, input ports.PublishVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidRequest)
	}
	if input.File.Reader == nil || input.Thumbnail.Reader == nil {
		return nil, fmt.Errorf("%w: video file and thumbnail are required", domain.ErrInvalidRequest)
	}

	file, err := s.media.Upload(ctx, "videos", input.File)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	thumb, err := s.media.Upload(ctx, "thumbnails", input.Thumbnail)
	if err != nil {
		s.rollback(ctx, file)
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	video := &domain.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		File:        *file,
		Thumbnail:   *thumb,
		Duration:    input.Duration,
		IsPublished: true,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		s.rollback(ctx, file)
		s.rollback(ctx, thumb)
		return nil, err
	}

	s.log.InfoContext(ctx, "video published", "video_id", video.ID, "owner_id", ownerID)
	return video, nil
}

func (s *VideoService) Get(ctx context.Context, id, viewerID uuid.UUID) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, domain.ErrNotFound
	}

	if viewerID != uuid.Nil {
		if err := s.videos.IncrementViews(ctx, id); err != nil {
			s.log.WarnContext(ctx, "failed to count view", "video_id", id, "error", err)
		} else {
			video.Views++
		}
		if err := s.users.AppendWatchHistory(ctx, viewerID, id); err != nil {
			s.log.WarnContext(ctx, "failed to append watch history", "video_id", id, "error", err)
		}
	}
	return video, nil
}

func (s *VideoService) List(ctx context.Context, filter ports.VideoFilter) ([]*domain.Video, error) {
	if filter.Limit <= 0 || filter.Limit > videoPageSize {
		filter.Limit = videoPageSize
	}
	filter.OnlyPublished = true
	return s.videos.List(ctx, filter)
}

func (s *VideoService) Update(ctx context.Context, id, callerID uuid.UUID, input ports.UpdateVideoInput) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidRequest)
		}
		video.Title = title
	}
	if input.Description != nil {
		video.Description = strings.TrimSpace(*input.Description)
	}

	var oldThumb *domain.Asset
	if input.Thumbnail != nil {
		thumb, err := s.media.Upload(ctx, "thumbnails", *input.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		old := video.Thumbnail
		oldThumb = &old
		video.Thumbnail = *thumb
	}

	if err := s.videos.Update(ctx, video); err != nil {
		if input.Thumbnail != nil {
			s.rollback(ctx, &video.Thumbnail)
		}
		return nil, err
	}
	if oldThumb != nil {
		s.rollback(ctx, oldThumb)
	}
	return video, nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, callerID uuid.UUID) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err := s.videos.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Delete removes the record (with its likes and comments, in one
// transaction) and then the hosted assets. Asset deletion failing after
// the commit leaves orphans on the host, never dangling references.
func (s *VideoService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	video, err := s.ownedVideo(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}
	s.rollback(ctx, &video.File)
	s.rollback(ctx, &video.Thumbnail)
	s.log.InfoContext(ctx, "video deleted", "video_id", id, "owner_id", callerID)
	return nil
}

func (s *VideoService) ownedVideo(ctx context.Context, id, callerID uuid.UUID) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return video, nil
}

func (s *VideoService) rollback(ctx context.Context, asset *domain.Asset) {
	if asset == nil || asset.Key == "" {
		return
	}
	if err := s.media.Delete(ctx, asset.Key); err != nil {
		s.log.WarnContext(ctx, "failed to delete asset", "key", asset.Key, "error", err)
	}
}
