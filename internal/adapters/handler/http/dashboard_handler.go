package http

import (
	"net/http"

	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary      Returns aggregate channel stats for the authenticated creator
// @Tags         dashboard
// @Success      200
// @Failure      401
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	stats, err := h.service.Stats(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	videos, err := h.service.Videos(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}
