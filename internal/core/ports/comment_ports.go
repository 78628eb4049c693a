package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentService interface {
	Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, page int) ([]*domain.Comment, error)
	Edit(ctx context.Context, id, callerID uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}
