package handler

import (
	"net/http"

	"chirpnet/internal/httputil"
	"chirpnet/internal/service"
	"chirpnet/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List handles GET /notifications
// Returns the caller's notifications, newest first. Listing marks
// everything read.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	notifications, err := h.notificationService.ListForUser(r.Context(), id)
	if err != nil {
		respondError(w, "List notifications handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, notifications)
}

// DeleteAll handles DELETE /notifications
// Clears the caller's notifications and reports whether any existed.
func (h *NotificationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	deleted, err := h.notificationService.DeleteAllForUser(r.Context(), id)
	if err != nil {
		respondError(w, "Delete notifications handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
