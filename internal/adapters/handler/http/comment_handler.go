package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	videoID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	comment, err := h.service.Add(r.Context(), videoID, user.ID, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.service.ListByVideo(r.Context(), videoID, pageParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	comment, err := h.service.Edit(r.Context(), id, user.ID, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
