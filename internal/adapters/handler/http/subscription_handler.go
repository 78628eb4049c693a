package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type subscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	subscribed, err := h.service.Toggle(r.Context(), user.ID, chi.URLParam(r, "handle"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionResponse{Subscribed: subscribed})
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.service.Subscribers(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subscribers)
}

func (h *SubscriptionHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	channels, err := h.service.SubscribedChannels(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}
