package domain

// ChannelStats is the creator dashboard aggregate for one channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
}
