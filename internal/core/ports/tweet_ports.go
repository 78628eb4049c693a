package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tweet, error)
	Update(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TweetService interface {
	Create(ctx context.Context, ownerID uuid.UUID, content string) (*domain.Tweet, error)
	ListByChannel(ctx context.Context, channelHandle string) ([]*domain.Tweet, error)
	Edit(ctx context.Context, id, callerID uuid.UUID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}
