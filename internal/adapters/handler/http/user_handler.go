package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe godoc
// @Summary      Returns the authenticated account
// @Tags         users
// @Success      200
// @Failure      401
// @Router       /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), user.ID, ports.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.service.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "cover_image", h.service.UpdateCoverImage)
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string,
	update func(context.Context, uuid.UUID, ports.FileUpload) (*domain.User, error)) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}
	upload, err := formFile(r, field)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := update(r.Context(), user.ID, *upload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GetChannel godoc
// @Summary      Returns a channel profile with subscription counts
// @Tags         channels
// @Success      200
// @Failure      404
// @Router       /channels/{handle} [get]
func (h *UserHandler) GetChannel(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	profile, err := h.service.ChannelProfile(r.Context(), handle, viewerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	videos, err := h.service.WatchHistory(r.Context(), user.ID, pageParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
