package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidhub/api/internal/core/domain"
)

func (app *TestApp) publishVideo(t *testing.T, sess session, title string) domain.Video {
	t.Helper()

	body, contentType := multipartBody(t,
		map[string]string{"title": title, "description": "a test upload", "duration": "12.5"},
		map[string][]byte{
			"video":     []byte("fake video bytes"),
			"thumbnail": []byte("fake thumbnail bytes"),
		},
	)

	req, err := http.NewRequest(http.MethodPost, app.Server.URL+"/api/videos", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(sess.Access)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var video domain.Video
	decodeBody(t, resp, &video)
	return video
}

// TestVideoFlow covers publish, viewing, listing, comments and likes.
func TestVideoFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")
	alice := app.login(t, "alice@example.com", "Secret123")

	video := app.publishVideo(t, alice, "My first upload")
	assert.True(t, video.IsPublished)
	assert.NotEmpty(t, video.File.URL)
	assert.NotEmpty(t, video.Thumbnail.URL)
	assert.Equal(t, 2, app.Media.count(), "file and thumbnail should be stored")

	// Anonymous viewing works but does not count a view.
	resp := app.get(t, "/api/videos/"+video.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Video
	decodeBody(t, resp, &got)
	assert.Equal(t, int64(0), got.Views)

	// A signed-in view is counted.
	app.registerUser(t, "bob", "bob@example.com", "Secret123")
	bob := app.login(t, "bob@example.com", "Secret123")

	resp = app.get(t, "/api/videos/"+video.ID.String(), bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &got)
	assert.Equal(t, int64(1), got.Views)

	// And lands in the viewer's watch history.
	resp = app.get(t, "/api/users/history", bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []domain.Video
	decodeBody(t, resp, &history)
	require.Len(t, history, 1)
	assert.Equal(t, video.ID, history[0].ID)

	// The listing shows published videos with their owner projection.
	resp = app.get(t, "/api/videos")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []domain.Video
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Owner)
	assert.Equal(t, "alice", listed[0].Owner.Handle)

	// Comments.
	resp = app.postJSON(t, "/api/videos/"+video.ID.String()+"/comments", map[string]string{
		"content": "nice one",
	}, bob.Access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.get(t, "/api/videos/"+video.ID.String()+"/comments")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []domain.Comment
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Content)

	// Likes toggle on and off.
	resp = app.postJSON(t, "/api/likes/video/"+video.ID.String(), nil, bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var like struct {
		Liked bool `json:"liked"`
	}
	decodeBody(t, resp, &like)
	assert.True(t, like.Liked)

	resp = app.postJSON(t, "/api/likes/video/"+video.ID.String(), nil, bob.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &like)
	assert.False(t, like.Liked)
}

func TestUnpublishedVideoVisibility(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")
	alice := app.login(t, "alice@example.com", "Secret123")
	video := app.publishVideo(t, alice, "Draft material")

	resp := app.postJSON(t, "/api/videos/"+video.ID.String()+"/publish", nil, alice.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled domain.Video
	decodeBody(t, resp, &toggled)
	require.False(t, toggled.IsPublished)

	// Hidden from everyone but the owner.
	resp = app.get(t, "/api/videos/"+video.ID.String())
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = app.get(t, "/api/videos/"+video.ID.String(), alice.Access)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// And absent from the public listing.
	resp = app.get(t, "/api/videos")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []domain.Video
	decodeBody(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestVideoOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerUser(t, "alice", "alice@example.com", "Secret123")
	alice := app.login(t, "alice@example.com", "Secret123")
	video := app.publishVideo(t, alice, "Alice's video")

	app.registerUser(t, "bob", "bob@example.com", "Secret123")
	bob := app.login(t, "bob@example.com", "Secret123")

	// Someone else's video cannot be edited or deleted.
	req, err := http.NewRequest(http.MethodDelete, app.Server.URL+"/api/videos/"+video.ID.String(), nil)
	require.NoError(t, err)
	req.AddCookie(bob.Access)
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The owner can; the hosted assets go with it.
	req, err = http.NewRequest(http.MethodDelete, app.Server.URL+"/api/videos/"+video.ID.String(), nil)
	require.NoError(t, err)
	req.AddCookie(alice.Access)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, app.Media.count())

	resp = app.get(t, "/api/videos/"+video.ID.String())
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
