package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type VideoHandler struct {
	service ports.VideoService
}

func NewVideoHandler(service ports.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

// Publish godoc
// @Summary      Uploads and publishes a video
// @Tags         videos
// @Accept       mpfd
// @Success      201
// @Failure      400
// @Failure      401
// @Router       /videos [post]
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := r.ParseMultipartForm(maxVideoMemory); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	file, err := formFile(r, "video")
	if err != nil {
		writeError(w, r, err)
		return
	}
	thumbnail, err := formFile(r, "thumbnail")
	if err != nil {
		writeError(w, r, err)
		return
	}
	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	video, err := h.service.Publish(r.Context(), user.ID, ports.PublishVideoInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		File:        *file,
		Thumbnail:   *thumbnail,
		Duration:    duration,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

// Get godoc
// @Summary      Returns one video and counts the view for signed-in callers
// @Tags         videos
// @Success      200
// @Failure      404
// @Router       /videos/{id} [get]
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.service.Get(r.Context(), id, viewerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// List godoc
// @Summary      Lists published videos
// @Tags         videos
// @Success      200
// @Router       /videos [get]
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := ports.VideoFilter{
		Query:  r.URL.Query().Get("q"),
		Offset: (pageParam(r) - 1) * 20,
	}
	if owner := r.URL.Query().Get("owner"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			writeError(w, r, domain.ErrInvalidRequest)
			return
		}
		filter.OwnerID = ownerID
	}

	videos, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

type updateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	input := ports.UpdateVideoInput{}
	if mediaType(r) == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			writeError(w, r, domain.ErrInvalidRequest)
			return
		}
		if v := r.FormValue("title"); v != "" {
			input.Title = &v
		}
		if v := r.FormValue("description"); v != "" {
			input.Description = &v
		}
		if upload, err := formFile(r, "thumbnail"); err == nil {
			input.Thumbnail = upload
		}
	} else {
		var req updateVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, domain.ErrInvalidRequest)
			return
		}
		input.Title = req.Title
		input.Description = req.Description
	}

	video, err := h.service.Update(r.Context(), id, user.ID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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

	video, err := h.service.TogglePublish(r.Context(), id, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func idParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidRequest
	}
	return id, nil
}
