package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tweet is a short text post on a channel, independent of any video.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *Owner `json:"owner,omitempty"`
	Likes int64  `json:"likes"`
}
