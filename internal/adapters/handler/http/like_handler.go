package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type LikeHandler struct {
	service ports.LikeService
}

func NewLikeHandler(service ports.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleVideoLike)
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleCommentLike)
}

func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleTweetLike)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request,
	fn func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	liked, err := fn(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Liked: liked})
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	videos, err := h.service.LikedVideos(r.Context(), user.ID, pageParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}
