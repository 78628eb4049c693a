package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records that Subscriber follows Channel. Self-subscription
// is rejected at the service layer.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}
