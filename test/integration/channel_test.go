package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidhub/api/internal/core/domain"
)

// TestChannelFlow covers subscriptions, channel pages, tweets and the
// creator dashboard.
func TestChannelFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")
	alice := app.login(t, "alice@example.com", "Secret123")
	app.registerUser(t, "bob", "bob@example.com", "Secret123")
	bob := app.login(t, "bob@example.com", "Secret123")

	video := app.publishVideo(t, alice, "Channel trailer")

	// Bob subscribes to Alice.
	resp := app.postJSON(t, "/api/channels/alice/subscription", nil, bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sub struct {
		Subscribed bool `json:"subscribed"`
	}
	decodeBody(t, resp, &sub)
	assert.True(t, sub.Subscribed)

	// Self-subscription is rejected.
	resp = app.postJSON(t, "/api/channels/alice/subscription", nil, alice.Access)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The channel page shows the count and, for Bob, his own state.
	resp = app.get(t, "/api/channels/alice", bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile domain.ChannelProfile
	decodeBody(t, resp, &profile)
	assert.Equal(t, "alice", profile.Handle)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.True(t, profile.IsSubscribed)

	// Anonymous view of the same page.
	resp = app.get(t, "/api/channels/alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &profile)
	assert.False(t, profile.IsSubscribed)

	// Bob's subscription list names the channel.
	resp = app.get(t, "/api/subscriptions", bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var channels []domain.Owner
	decodeBody(t, resp, &channels)
	require.Len(t, channels, 1)
	assert.Equal(t, "alice", channels[0].Handle)

	// Tweets.
	resp = app.postJSON(t, "/api/tweets", map[string]string{
		"content": "first post on my channel",
	}, alice.Access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.postJSON(t, "/api/tweets", map[string]string{
		"content": strings.Repeat("x", 281),
	}, alice.Access)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "over-length tweet should be rejected")

	resp = app.get(t, "/api/channels/alice/tweets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tweets []domain.Tweet
	decodeBody(t, resp, &tweets)
	require.Len(t, tweets, 1)
	assert.Equal(t, "first post on my channel", tweets[0].Content)

	// Bob watches and likes the video, then the dashboard reflects it all.
	resp = app.get(t, "/api/videos/"+video.ID.String(), bob.Access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.postJSON(t, "/api/likes/video/"+video.ID.String(), nil, bob.Access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.get(t, "/api/dashboard/stats", alice.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats domain.ChannelStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalSubscribers)
	assert.Equal(t, int64(1), stats.TotalLikes)

	resp = app.get(t, "/api/dashboard/videos", alice.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own []domain.Video
	decodeBody(t, resp, &own)
	require.Len(t, own, 1)
}

func TestPlaylistFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")
	alice := app.login(t, "alice@example.com", "Secret123")
	video := app.publishVideo(t, alice, "Episode 1")

	resp := app.postJSON(t, "/api/playlists", map[string]string{
		"name":        "Season one",
		"description": "all episodes in order",
	}, alice.Access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var playlist domain.Playlist
	decodeBody(t, resp, &playlist)

	resp = app.postJSON(t, "/api/playlists/"+playlist.ID.String()+"/videos/"+video.ID.String(), nil, alice.Access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The public playlist page includes its videos.
	resp = app.get(t, "/api/playlists/"+playlist.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Playlist
	decodeBody(t, resp, &got)
	assert.Equal(t, "Season one", got.Name)
	require.Len(t, got.Videos, 1)
	assert.Equal(t, video.ID, got.Videos[0].ID)

	// Only the owner can modify it.
	app.registerUser(t, "bob", "bob@example.com", "Secret123")
	bob := app.login(t, "bob@example.com", "Secret123")

	resp = app.postJSON(t, "/api/playlists/"+playlist.ID.String()+"/videos/"+video.ID.String(), nil, bob.Access)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, app.Server.URL+"/api/playlists/"+playlist.ID.String()+"/videos/"+video.ID.String(), nil)
	require.NoError(t, err)
	req.AddCookie(alice.Access)
	removed, err := app.Client.Do(req)
	require.NoError(t, err)
	removed.Body.Close()
	require.Equal(t, http.StatusNoContent, removed.StatusCode)

	resp = app.get(t, "/api/playlists/"+playlist.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &got)
	assert.Empty(t, got.Videos)
}
