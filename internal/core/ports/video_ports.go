package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// Delete removes the video row together with its likes and comments
	// in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	OwnerVideos(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error)
	LikedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Video, error)
}

type VideoFilter struct {
	Query         string
	OwnerID       uuid.UUID
	OnlyPublished bool
	Limit         int
	Offset        int
}

type PublishVideoInput struct {
	Title       string
	Description string
	File        FileUpload
	Thumbnail   FileUpload
	Duration    float64
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *FileUpload
}

type VideoService interface {
	Publish(ctx context.Context, ownerID uuid.UUID, input PublishVideoInput) (*domain.Video, error)
	// Get returns the video and, for a non-nil viewer, counts the view
	// and appends it to the viewer's watch history.
	Get(ctx context.Context, id, viewerID uuid.UUID) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*domain.Video, error)
	Update(ctx context.Context, id, callerID uuid.UUID, input UpdateVideoInput) (*domain.Video, error)
	TogglePublish(ctx context.Context, id, callerID uuid.UUID) (*domain.Video, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}
