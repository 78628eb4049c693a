package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type LikeRepository interface {
	// Toggle inserts the like if absent, removes it if present, and
	// reports whether the target ends up liked.
	Toggle(ctx context.Context, userID uuid.UUID, target domain.LikeTarget, targetID uuid.UUID) (bool, error)
}

type LikeService interface {
	ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (bool, error)
	LikedVideos(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Video, error)
}
