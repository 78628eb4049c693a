package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const commentPageSize = 50

type CommentService struct {
	comments ports.CommentRepository
	videos   ports.VideoRepository
}

func NewCommentService(comments ports.CommentRepository, videos ports.VideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

func (s *CommentService) Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidRequest)
	}
	// The video must exist and be visible before anything is written.
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID uuid.UUID, page int) ([]*domain.Comment, error) {
	if page < 1 {
		page = 1
	}
	return s.comments.ListByVideo(ctx, videoID, commentPageSize, (page-1)*commentPageSize)
}

func (s *CommentService) Edit(ctx context.Context, id, callerID uuid.UUID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidRequest)
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.OwnerID != callerID {
		return domain.ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}
