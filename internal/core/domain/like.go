package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget names the kind of content a like attaches to. Exactly one
// of the target id columns is set per row.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

type Like struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Target    LikeTarget `json:"target"`
	TargetID  uuid.UUID  `json:"target_id"`
	CreatedAt time.Time  `json:"created_at"`
}
