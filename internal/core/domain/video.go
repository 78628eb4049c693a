package domain

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	File        Asset     `json:"file"`
	Thumbnail   Asset     `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner is a denormalized projection filled in by list queries.
	Owner *Owner `json:"owner,omitempty"`
	Likes int64  `json:"likes"`
}

// Owner is the slim user projection embedded in videos, comments and
// tweets: enough to render an attribution line, nothing sensitive.
type Owner struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Avatar      *Asset    `json:"avatar,omitempty"`
}
