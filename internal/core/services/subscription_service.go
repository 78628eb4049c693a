package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type SubscriptionService struct {
	subscriptions ports.SubscriptionRepository
	users         ports.UserRepository
}

func NewSubscriptionService(subscriptions ports.SubscriptionRepository, users ports.UserRepository) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, users: users}
}

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID uuid.UUID, channelHandle string) (bool, error) {
	channel, err := s.channelByHandle(ctx, channelHandle)
	if err != nil {
		return false, err
	}
	if channel.ID == subscriberID {
		return false, fmt.Errorf("%w: cannot subscribe to own channel", domain.ErrInvalidRequest)
	}
	return s.subscriptions.Toggle(ctx, subscriberID, channel.ID)
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelHandle string) ([]*domain.Owner, error) {
	channel, err := s.channelByHandle(ctx, channelHandle)
	if err != nil {
		return nil, err
	}
	return s.subscriptions.Subscribers(ctx, channel.ID)
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Owner, error) {
	return s.subscriptions.SubscribedChannels(ctx, subscriberID)
}

func (s *SubscriptionService) channelByHandle(ctx context.Context, handle string) (*domain.User, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" {
		return nil, fmt.Errorf("%w: channel handle is required", domain.ErrInvalidRequest)
	}
	return s.users.GetByHandle(ctx, handle)
}
