package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const likedPageSize = 20

type LikeService struct {
	likes    ports.LikeRepository
	videos   ports.VideoRepository
	comments ports.CommentRepository
	tweets   ports.TweetRepository
}

func NewLikeService(likes ports.LikeRepository, videos ports.VideoRepository, comments ports.CommentRepository, tweets ports.TweetRepository) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, tweets: tweets}
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, userID, domain.LikeTargetVideo, videoID)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, userID, domain.LikeTargetComment, commentID)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (bool, error) {
	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, userID, domain.LikeTargetTweet, tweetID)
}

func (s *LikeService) LikedVideos(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Video, error) {
	if page < 1 {
		page = 1
	}
	return s.videos.LikedBy(ctx, userID, likedPageSize, (page-1)*likedPageSize)
}
