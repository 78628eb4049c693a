package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const tweetMaxLength = 280

type TweetService struct {
	tweets ports.TweetRepository
	users  ports.UserRepository
}

func NewTweetService(tweets ports.TweetRepository, users ports.UserRepository) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func (s *TweetService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*domain.Tweet, error) {
	content, err := validateTweet(content)
	if err != nil {
		return nil, err
	}
	tweet := &domain.Tweet{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ListByChannel(ctx context.Context, channelHandle string) ([]*domain.Tweet, error) {
	channel, err := s.users.GetByHandle(ctx, strings.ToLower(strings.TrimSpace(channelHandle)))
	if err != nil {
		return nil, err
	}
	return s.tweets.ListByOwner(ctx, channel.ID)
}

func (s *TweetService) Edit(ctx context.Context, id, callerID uuid.UUID, content string) (*domain.Tweet, error) {
	content, err := validateTweet(content)
	if err != nil {
		return nil, err
	}

	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	tweet.Content = content
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tweet.OwnerID != callerID {
		return domain.ErrForbidden
	}
	return s.tweets.Delete(ctx, id)
}

func validateTweet(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content is required", domain.ErrInvalidRequest)
	}
	if len([]rune(content)) > tweetMaxLength {
		return "", fmt.Errorf("%w: content exceeds %d characters", domain.ErrInvalidRequest, tweetMaxLength)
	}
	return content, nil
}
