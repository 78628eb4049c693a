package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform. PasswordHash and RefreshToken never
// leave the server; the json tags strip them from every response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Handle       string    `json:"handle"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	// RefreshToken is the single currently-valid refresh token for the
	// account, nil when logged out. Written only by the auth service.
	RefreshToken *string   `json:"-"`
	Avatar       *Asset    `json:"avatar,omitempty"`
	CoverImage   *Asset    `json:"cover_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Asset references a file on the external media host: a public URL plus
// the key needed to delete it later.
type Asset struct {
	URL string `json:"url"`
	Key string `json:"-"`
}

// ChannelProfile is a user as seen on their channel page.
type ChannelProfile struct {
	User
	SubscriberCount   int64 `json:"subscriber_count"`
	SubscribedToCount int64 `json:"subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

// TokenPair bundles the two credentials returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
