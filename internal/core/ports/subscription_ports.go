package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Subscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.Owner, error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Owner, error)
}

type SubscriptionService interface {
	// Toggle subscribes or unsubscribes the caller and reports the
	// resulting state. Subscribing to one's own channel is rejected.
	Toggle(ctx context.Context, subscriberID uuid.UUID, channelHandle string) (bool, error)
	Subscribers(ctx context.Context, channelHandle string) ([]*domain.Owner, error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Owner, error)
}
