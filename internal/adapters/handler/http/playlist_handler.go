package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type PlaylistHandler struct {
	service ports.PlaylistService
}

func NewPlaylistHandler(service ports.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	playlist, err := h.service.Create(r.Context(), user.ID, ports.CreatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	playlist, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	playlist, err := h.service.Update(r.Context(), id, user.ID, ports.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	playlistID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	videoID, err := idParam(r, "videoID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.AddVideo(r.Context(), playlistID, videoID, user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	playlistID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	videoID, err := idParam(r, "videoID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.RemoveVideo(r.Context(), playlistID, videoID, user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
